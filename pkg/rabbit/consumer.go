package rabbit

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

// Handler processes one message body. A returned error requeues the message unless auto-ack is on.
type Handler func(ctx context.Context, body []byte) error

// Consumer reads deliveries from one queue
type Consumer struct {
	client      *Client
	queue       string
	consumerTag string
	// MessageTimeout bounds each handler call
	MessageTimeout time.Duration
}

// NewConsumer creates a consumer for the given queue. Consumption starts with Run.
func (c *Client) NewConsumer(queue, consumerTag string) *Consumer {
	return &Consumer{
		client:         c,
		queue:          queue,
		consumerTag:    consumerTag,
		MessageTimeout: 30 * time.Second,
	}
}

func (c *Consumer) subscribe() (*amqp.Channel, <-chan amqp.Delivery, error) {
	ch, err := c.client.channel()
	if err != nil {
		return nil, nil, err
	}
	if err := ch.Qos(c.client.config.PrefetchCount, 0, false); err != nil {
		_ = ch.Close()
		return nil, nil, fmt.Errorf("failed to set QoS: %w", err)
	}
	deliveries, err := ch.Consume(c.queue, c.consumerTag, c.client.config.AutoAck, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		return nil, nil, fmt.Errorf("failed to consume from queue %s: %w", c.queue, err)
	}
	return ch, deliveries, nil
}

// Run consumes until ctx is canceled. When the delivery channel closes, Run resubscribes after
// the client reconnects.
func (c *Consumer) Run(ctx context.Context, handle Handler) error {
	for {
		ch, deliveries, err := c.subscribe()
		if err != nil {
			log.Warnf("consumer %s: %v", c.consumerTag, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.client.Reconnected():
			case <-time.After(c.client.config.ReconnectInterval):
			}
			continue
		}

		log.Infof("consumer %s started on queue %s", c.consumerTag, c.queue)
		if stop := c.drain(ctx, deliveries, handle); stop {
			_ = ch.Cancel(c.consumerTag, false)
			_ = ch.Close()
			return ctx.Err()
		}
		log.Warnf("consumer %s: delivery channel closed, resubscribing", c.consumerTag)
	}
}

// drain returns true when ctx is done, false when the deliveries channel closed.
func (c *Consumer) drain(ctx context.Context, deliveries <-chan amqp.Delivery, handle Handler) bool {
	for {
		select {
		case <-ctx.Done():
			return true
		case d, ok := <-deliveries:
			if !ok {
				return false
			}
			msgCtx, cancel := context.WithTimeout(ctx, c.MessageTimeout)
			err := handle(msgCtx, d.Body)
			cancel()

			if c.client.config.AutoAck {
				if err != nil {
					log.Errorf("Failed to process message with auto-ack enabled: %v", err)
				}
				continue
			}
			if err != nil {
				log.Errorf("Failed to process message: %v", err)
				_ = d.Reject(true)
			} else {
				_ = d.Ack(false)
			}
		}
	}
}
