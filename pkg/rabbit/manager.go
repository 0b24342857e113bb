package rabbit

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	instance *Manager
	once     sync.Once
	// initErr is kept so every caller after a failed first initialization sees the cause
	initErr error
)

// ManagerConfig RabbitMQ manager configuration, durations as strings ("10s")
type ManagerConfig struct {
	URL               string
	Heartbeat         string
	ConnectionTimeout string
	MaxIdleChannels   int
	AutoReconnect     bool
	ReconnectInterval string
	PrefetchCount     int
	AutoAck           bool
	AutoCreate        bool
}

// ExchangeConfig exchange declaration
type ExchangeConfig struct {
	Name       string
	Type       string
	Durable    bool
	AutoDelete bool
	Internal   bool
}

// QueueConfig queue declaration
type QueueConfig struct {
	Name       string
	Durable    bool
	AutoDelete bool
	Exclusive  bool
}

// BindingConfig queue binding
type BindingConfig struct {
	QueueName    string
	ExchangeName string
	RoutingKey   string
}

func (b BindingConfig) key() string {
	return fmt.Sprintf("%s:%s:%s", b.QueueName, b.ExchangeName, b.RoutingKey)
}

// Manager wraps the client and remembers what has already been declared
type Manager struct {
	client *Client

	mu        sync.Mutex
	exchanges map[string]bool
	queues    map[string]bool
	bindings  map[string]bool
}

// ToClientConfig fills unset values from DefaultConfig
func (mc *ManagerConfig) ToClientConfig() *Config {
	def := DefaultConfig()
	cfg := &Config{
		URL:               mc.URL,
		Heartbeat:         ParseDuration(mc.Heartbeat, def.Heartbeat),
		ConnectionTimeout: ParseDuration(mc.ConnectionTimeout, def.ConnectionTimeout),
		MaxIdleChannels:   mc.MaxIdleChannels,
		AutoReconnect:     mc.AutoReconnect,
		ReconnectInterval: ParseDuration(mc.ReconnectInterval, def.ReconnectInterval),
		PrefetchCount:     mc.PrefetchCount,
		AutoAck:           mc.AutoAck,
		AutoCreate:        mc.AutoCreate,
	}
	if cfg.URL == "" {
		cfg.URL = def.URL
	}
	if cfg.MaxIdleChannels <= 0 {
		cfg.MaxIdleChannels = def.MaxIdleChannels
	}
	if cfg.PrefetchCount <= 0 {
		cfg.PrefetchCount = def.PrefetchCount
	}
	return cfg
}

// InitializeWithConfig creates the singleton manager
func InitializeWithConfig(config *ManagerConfig) error {
	once.Do(func() {
		if config == nil {
			config = &ManagerConfig{AutoReconnect: true}
		}
		client, err := NewClient(config.ToClientConfig())
		if err != nil {
			initErr = err
			return
		}
		instance = newManager(client)
		log.Info("RabbitMQ manager initialized successfully")
	})
	if initErr != nil {
		return fmt.Errorf("failed to initialize RabbitMQ manager: %w", initErr)
	}
	return nil
}

func newManager(client *Client) *Manager {
	return &Manager{
		client:    client,
		exchanges: make(map[string]bool),
		queues:    make(map[string]bool),
		bindings:  make(map[string]bool),
	}
}

// GetInstance returns the singleton manager
func GetInstance() (*Manager, error) {
	if instance == nil {
		return nil, fmt.Errorf("RabbitMQ manager not initialized, call InitializeWithConfig first")
	}
	return instance, nil
}

// DeclareExchange declares an exchange once
func (m *Manager) DeclareExchange(config ExchangeConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exchanges[config.Name] {
		return nil
	}
	if err := m.client.DeclareExchange(config.Name, config.Type, config.Durable, config.AutoDelete, config.Internal); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", config.Name, err)
	}
	m.exchanges[config.Name] = true
	return nil
}

// DeclareQueue declares a queue once
func (m *Manager) DeclareQueue(config QueueConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.queues[config.Name] {
		return nil
	}
	if _, err := m.client.DeclareQueue(config.Name, config.Durable, config.AutoDelete, config.Exclusive); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", config.Name, err)
	}
	m.queues[config.Name] = true
	return nil
}

// BindQueue binds a queue once
func (m *Manager) BindQueue(config BindingConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := config.key()
	if m.bindings[key] {
		return nil
	}
	if err := m.client.BindQueue(config.QueueName, config.RoutingKey, config.ExchangeName); err != nil {
		return fmt.Errorf("failed to bind queue %s to exchange %s: %w", config.QueueName, config.ExchangeName, err)
	}
	m.bindings[key] = true
	return nil
}

// SetupQueue declares a durable queue and binds it to exchange
func (m *Manager) SetupQueue(queue, exchange, routingKey string) error {
	if err := m.DeclareQueue(QueueConfig{Name: queue, Durable: true}); err != nil {
		return err
	}
	return m.BindQueue(BindingConfig{QueueName: queue, ExchangeName: exchange, RoutingKey: routingKey})
}

// PublishJSON publishes a JSON body to exchange with routingKey
func (m *Manager) PublishJSON(ctx context.Context, exchange, routingKey string, body []byte) error {
	return m.client.PublishJSON(ctx, exchange, routingKey, body)
}

// NewConsumer creates a consumer on queue
func (m *Manager) NewConsumer(queue, consumerTag string) *Consumer {
	return m.client.NewConsumer(queue, consumerTag)
}

// Close closes the underlying client
func (m *Manager) Close() error {
	if err := m.client.Close(); err != nil {
		return fmt.Errorf("failed to close RabbitMQ client: %w", err)
	}
	return nil
}
