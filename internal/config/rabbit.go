package config

import (
	"context"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/Ambition09/meeshodashboard/pkg/rabbit"
)

var (
	// A context that can be canceled to stop all consumers
	rabbitCtx    context.Context
	rabbitCancel context.CancelFunc
	consumerWg   sync.WaitGroup
	initOnce     sync.Once
	// rabbitInitErr is returned by every InitRabbitMQ call after a failed first one
	rabbitInitErr error
)

const reportConsumerTag = "meeshodash_report_request_consumer"

// getRabbitConfig 从配置对象中构建RabbitMQ管理器配置
func getRabbitConfig() *rabbit.ManagerConfig {
	return &rabbit.ManagerConfig{
		URL:           GlobalConfig.RabbitMQ.URL,
		AutoReconnect: true,
		AutoCreate:    true,
	}
}

// RabbitEnabled reports whether a broker URL is configured
func RabbitEnabled() bool {
	return GlobalConfig.RabbitMQ.URL != ""
}

// InitRabbitMQ 初始化RabbitMQ客户端
func InitRabbitMQ() error {
	initOnce.Do(func() {
		rabbitCtx, rabbitCancel = context.WithCancel(context.Background())

		rabbitInitErr = rabbit.InitializeWithConfig(getRabbitConfig())
		if rabbitInitErr != nil {
			log.Errorf("Failed to initialize RabbitMQ manager: %v", rabbitInitErr)
			return
		}
		log.Info("RabbitMQ manager initialized successfully ...")
	})
	return rabbitInitErr
}

// CloseRabbitMQ 安全关闭所有RabbitMQ连接
func CloseRabbitMQ() {
	if rabbitCancel != nil {
		rabbitCancel()
	}
	consumerWg.Wait()

	manager, err := rabbit.GetInstance()
	if err == nil && manager != nil {
		if err := manager.Close(); err != nil {
			log.Errorf("close rabbitmq: %v", err)
		}
	}
	log.Info("RabbitMQ connections closed")
}

func declareExchange(manager *rabbit.Manager) (string, error) {
	cfg := GlobalConfig.RabbitMQ
	exchangeType := cfg.ExchangeType
	if exchangeType == "" {
		exchangeType = "direct"
	}
	log.Infof("Declaring exchange: %s, type: %s", cfg.Exchange, exchangeType)
	err := manager.DeclareExchange(rabbit.ExchangeConfig{
		Name:    cfg.Exchange,
		Type:    exchangeType,
		Durable: true,
	})
	return cfg.Exchange, err
}

// StartReportRequestConsumer 启动报表请求消费者
func StartReportRequestConsumer(handle rabbit.Handler) error {
	if err := InitRabbitMQ(); err != nil {
		return err
	}
	manager, err := rabbit.GetInstance()
	if err != nil {
		return err
	}

	exchange, err := declareExchange(manager)
	if err != nil {
		return err
	}

	queue := GlobalConfig.RabbitMQ.Queue.ReportReq
	if queue == "" {
		return errors.New("report request queue name is empty")
	}
	if err := manager.SetupQueue(queue, exchange, queue); err != nil {
		return err
	}

	consumer := manager.NewConsumer(queue, reportConsumerTag)
	consumerWg.Add(1)
	go func() {
		defer consumerWg.Done()
		if err := consumer.Run(rabbitCtx, handle); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("consumer %s stopped: %v", reportConsumerTag, err)
		}
		log.Infof("consumer %s finished", reportConsumerTag)
	}()
	return nil
}

// PublishReportResponse 发布报表结果到响应队列
func PublishReportResponse(ctx context.Context, body []byte) error {
	if err := InitRabbitMQ(); err != nil {
		return err
	}
	manager, err := rabbit.GetInstance()
	if err != nil {
		return err
	}

	queue := GlobalConfig.RabbitMQ.Queue.ReportRes
	if queue == "" {
		return errors.New("report response queue name is empty")
	}
	exchange, err := declareExchange(manager)
	if err != nil {
		return err
	}
	if err := manager.SetupQueue(queue, exchange, queue); err != nil {
		return err
	}

	if err := manager.PublishJSON(ctx, exchange, queue, body); err != nil {
		log.Errorf("Failed to publish message: %v", err)
		return err
	}
	log.Infof("Message published to exchange '%s' with queue '%s'", exchange, queue)
	return nil
}
