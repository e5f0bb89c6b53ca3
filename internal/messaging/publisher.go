package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher publishes gesture events. Implementations other than the AMQP
// one exist for disabled publishing and for tests.
type Publisher interface {
	// PublishTrigger sends the activation state as a JSON boolean on the
	// trigger routing key.
	PublishTrigger(ctx context.Context, active bool) error

	// PublishPosition sends the normalized anchor as a JSON [x, y] array
	// on the position routing key.
	PublishPosition(ctx context.Context, x, y float64) error

	// Close releases the broker connection.
	Close() error
}

// AMQPPublisher owns one broker connection and one channel for the process
// lifetime. There is no retry queue and no reconnection: once the
// connection is unusable, every publish fails until restart.
type AMQPPublisher struct {
	cfg  Config
	conn *amqp.Connection
	ch   channel
}

// Connect dials the broker and sets up the exchange topology. Errors wrap
// ErrConnectionFailure or ErrTopologyConflict.
func Connect(cfg Config) (*AMQPPublisher, error) {
	conn, ch, err := dial(cfg)
	if err != nil {
		return nil, err
	}

	return &AMQPPublisher{cfg: cfg, conn: conn, ch: ch}, nil
}

// PublishTrigger implements Publisher.
func (p *AMQPPublisher) PublishTrigger(ctx context.Context, active bool) error {
	return p.publish(ctx, RoutingKeyTrigger, active)
}

// PublishPosition implements Publisher.
func (p *AMQPPublisher) PublishPosition(ctx context.Context, x, y float64) error {
	return p.publish(ctx, p.cfg.RoutingKeyPosition, [2]float64{x, y})
}

func (p *AMQPPublisher) publish(ctx context.Context, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrPublishFailure, key, err)
	}

	// DeliveryMode is marked persistent even though the exchange is
	// non-durable and consumer queues are auto-delete, so nothing actually
	// survives a broker restart. The marker is part of the wire contract;
	// leave it as is.
	err = p.ch.PublishWithContext(ctx, p.cfg.ExchangeName, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublishFailure, key, err)
	}
	return nil
}

// Close closes the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn.Close()
	}
	return nil
}
