package rabbit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseDuration("3s", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("-1s", time.Minute))
}

func TestManagerConfig_ToClientConfig(t *testing.T) {
	cfg := (&ManagerConfig{Heartbeat: "2s", AutoAck: true}).ToClientConfig()
	def := DefaultConfig()

	assert.Equal(t, def.URL, cfg.URL)
	assert.Equal(t, 2*time.Second, cfg.Heartbeat)
	assert.Equal(t, def.ConnectionTimeout, cfg.ConnectionTimeout)
	assert.Equal(t, def.MaxIdleChannels, cfg.MaxIdleChannels)
	assert.Equal(t, def.PrefetchCount, cfg.PrefetchCount)
	assert.True(t, cfg.AutoAck)
}

func TestBindingKey(t *testing.T) {
	b := BindingConfig{QueueName: "q", ExchangeName: "ex", RoutingKey: "rk"}
	assert.Equal(t, "q:ex:rk", b.key())
}

func TestManagerDeclareCache(t *testing.T) {
	m := newManager(&Client{config: DefaultConfig(), closed: true})
	m.queues["report-req"] = true
	m.exchanges["meeshodash"] = true

	// cached declarations never touch the closed client
	assert.NoError(t, m.DeclareQueue(QueueConfig{Name: "report-req"}))
	assert.NoError(t, m.DeclareExchange(ExchangeConfig{Name: "meeshodash"}))
	assert.ErrorIs(t, m.DeclareQueue(QueueConfig{Name: "other"}), ErrClosed)
}

func TestInitializeWithConfig_KeepsError(t *testing.T) {
	cfg := &ManagerConfig{URL: "not-a-url"}

	err := InitializeWithConfig(cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to connect to RabbitMQ")

	// later calls report the same cause instead of pretending success
	again := InitializeWithConfig(cfg)
	require.Error(t, again)
	assert.Equal(t, err.Error(), again.Error())

	_, err = GetInstance()
	assert.Error(t, err)
}
