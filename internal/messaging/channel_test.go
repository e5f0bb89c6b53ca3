package messaging

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// fakeChannel implements the channel interface for tests.
type fakeChannel struct {
	declareErr error
	publishErr error
	queueErr   error

	declares  []declaredExchange
	published []publishedMessage
	queues    []string
	binds     []queueBind
	consumes  []consumeRequest
	closed    bool
}

type declaredExchange struct {
	name, kind string
	durable    bool
	autoDelete bool
}

type publishedMessage struct {
	exchange, key string
	msg           amqp.Publishing
}

type queueBind struct {
	queue, key, exchange string
}

type consumeRequest struct {
	queue   string
	autoAck bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	f.declares = append(f.declares, declaredExchange{name, kind, durable, autoDelete})
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, publishedMessage{exchange, key, msg})
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if f.queueErr != nil {
		return amqp.Queue{}, f.queueErr
	}
	if !autoDelete || !exclusive || durable {
		return amqp.Queue{}, fmt.Errorf("unexpected queue parameters: durable=%v autoDelete=%v exclusive=%v", durable, autoDelete, exclusive)
	}
	generated := fmt.Sprintf("amq.gen-%d", len(f.queues))
	f.queues = append(f.queues, generated)
	return amqp.Queue{Name: generated}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	f.binds = append(f.binds, queueBind{name, key, exchange})
	return nil
}

func (f *fakeChannel) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error) {
	f.consumes = append(f.consumes, consumeRequest{queue: queue, autoAck: autoAck})
	ch := make(chan amqp.Delivery)
	return ch, nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}
