package messaging

import (
	"context"
	"errors"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the subset of *amqp.Channel this package uses, kept as an
// interface so topology and publish behavior can be tested without a
// broker.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// openChannel adapts *amqp.Connection.Channel to the channel interface.
func openChannel(conn *amqp.Connection) func() (channel, error) {
	return func() (channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	}
}

// setupChannel opens a channel and declares the exchange as non-durable.
//
// If the broker rejects the declaration with a precondition-failed error
// (an exchange of the same name already exists with different parameters),
// the broker has closed the channel; recovery is a fresh channel on the
// same connection with no re-declaration, treating the existing exchange
// as authoritative. Any other declaration failure is fatal.
func setupChannel(open func() (channel, error), cfg Config) (channel, error) {
	ch, err := open()
	if err != nil {
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnectionFailure, err)
	}

	err = ch.ExchangeDeclare(cfg.ExchangeName, cfg.ExchangeType, false, false, false, false, nil)
	if err == nil {
		return ch, nil
	}

	var aerr *amqp.Error
	if errors.As(err, &aerr) && aerr.Code == amqp.PreconditionFailed {
		log.Printf("Exchange %q already exists with different parameters, reusing it", cfg.ExchangeName)
		ch, err = open()
		if err != nil {
			return nil, fmt.Errorf("%w: reopen channel: %v", ErrConnectionFailure, err)
		}
		return ch, nil
	}

	return nil, fmt.Errorf("%w: declare exchange %q: %v", ErrTopologyConflict, cfg.ExchangeName, err)
}

// dial connects to the broker and returns the connection together with a
// channel whose exchange topology is set up.
func dial(cfg Config) (*amqp.Connection, channel, error) {
	conn, err := amqp.Dial(cfg.URI())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dial %s:%d: %v", ErrConnectionFailure, cfg.Host, cfg.Port, err)
	}

	ch, err := setupChannel(openChannel(conn), cfg)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	return conn, ch, nil
}
