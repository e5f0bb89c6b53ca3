package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DecodeTrigger validates and decodes a trigger payload. The payload is
// valid iff it decodes to a JSON boolean; any other shape is a schema
// violation.
func DecodeTrigger(body []byte) (bool, error) {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return false, fmt.Errorf("decode trigger: %w", err)
	}

	active, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("decode trigger: expected JSON boolean, got %T", value)
	}
	return active, nil
}

// DecodePosition validates and decodes a position payload. The payload is
// valid iff it decodes to a JSON array of exactly two numbers. Both lie in
// [0,1] by convention, but the sender does not enforce the range and
// neither does this decoder.
func DecodePosition(body []byte) (float64, float64, error) {
	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return 0, 0, fmt.Errorf("decode position: %w", err)
	}

	arr, ok := value.([]any)
	if !ok || len(arr) != 2 {
		return 0, 0, fmt.Errorf("decode position: expected two-element JSON array, got %v", value)
	}

	x, xok := arr[0].(float64)
	y, yok := arr[1].(float64)
	if !xok || !yok {
		return 0, 0, fmt.Errorf("decode position: non-numeric elements in %v", arr)
	}
	return x, y, nil
}

// Consumer is the reference consumer: it binds two anonymous, exclusive,
// auto-delete queues to the trigger and position routing keys and consumes
// them with automatic acknowledgement. A message counts as delivered the
// moment it leaves the broker; there is no ack/nack step.
type Consumer struct {
	cfg  Config
	conn *amqp.Connection
	ch   channel

	// OnTrigger is called for each valid trigger payload.
	OnTrigger func(active bool)
	// OnPosition is called for each valid position payload.
	OnPosition func(x, y float64)
}

// NewConsumer connects to the broker using the same topology setup as the
// publisher, including the declaration-conflict recovery.
func NewConsumer(cfg Config) (*Consumer, error) {
	conn, ch, err := dial(cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{cfg: cfg, conn: conn, ch: ch}, nil
}

// Run binds the queues and dispatches deliveries until the context is
// canceled or the broker closes a delivery channel. Malformed payloads are
// logged with the offending payload and discarded; the consumer keeps
// running.
func (c *Consumer) Run(ctx context.Context) error {
	triggers, err := c.bind(RoutingKeyTrigger)
	if err != nil {
		return err
	}

	positions, err := c.bind(c.cfg.RoutingKeyPosition)
	if err != nil {
		return err
	}

	log.Printf("Waiting for messages on exchange %q (trigger=%s position=%s)",
		c.cfg.ExchangeName, RoutingKeyTrigger, c.cfg.RoutingKeyPosition)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-triggers:
			if !ok {
				return errors.New("trigger delivery channel closed")
			}
			c.handleTrigger(d.Body)
		case d, ok := <-positions:
			if !ok {
				return errors.New("position delivery channel closed")
			}
			c.handlePosition(d.Body)
		}
	}
}

// bind declares an anonymous exclusive auto-delete queue, binds it to the
// routing key, and starts auto-ack consumption.
func (c *Consumer) bind(routingKey string) (<-chan amqp.Delivery, error) {
	q, err := c.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: declare queue for %s: %v", ErrTopologyConflict, routingKey, err)
	}

	if err := c.ch.QueueBind(q.Name, routingKey, c.cfg.ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("%w: bind %s: %v", ErrTopologyConflict, routingKey, err)
	}

	deliveries, err := c.ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: consume %s: %v", ErrConnectionFailure, q.Name, err)
	}
	return deliveries, nil
}

func (c *Consumer) handleTrigger(body []byte) {
	active, err := DecodeTrigger(body)
	if err != nil {
		log.Printf("Discarding trigger payload %q: %v", body, err)
		return
	}
	if c.OnTrigger != nil {
		c.OnTrigger(active)
	}
}

func (c *Consumer) handlePosition(body []byte) {
	x, y, err := DecodePosition(body)
	if err != nil {
		log.Printf("Discarding position payload %q: %v", body, err)
		return
	}
	if c.OnPosition != nil {
		c.OnPosition(x, y)
	}
}

// Close closes the channel and connection.
func (c *Consumer) Close() error {
	if c.ch != nil {
		c.ch.Close()
	}
	if c.conn != nil && !c.conn.IsClosed() {
		return c.conn.Close()
	}
	return nil
}
