// Package messaging publishes gesture events to a RabbitMQ topic exchange
// and provides the consumer-side decode contract for the two payload kinds.
package messaging

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RoutingKeyTrigger is the routing key for activation-state edges. It is a
// fixed literal, not configurable.
const RoutingKeyTrigger = "RADr.Handout.Trigger"

// Config holds the broker connection and topology settings, resolved once
// at process start from environment variables.
type Config struct {
	Host        string `env:"RABBITMQ_HOST" envDefault:"localhost"`
	Port        int    `env:"RABBITMQ_PORT" envDefault:"5672"`
	VirtualHost string `env:"RABBITMQ_VHOST" envDefault:"/"`
	Username    string `env:"RABBITMQ_USERNAME" envDefault:"guest"`
	Password    string `env:"RABBITMQ_PASSWORD" envDefault:"guest"`

	ExchangeName string `env:"RABBITMQ_EXCHANGE_NAME" envDefault:"handout"`
	ExchangeType string `env:"RABBITMQ_EXCHANGE_TYPE" envDefault:"topic"`

	RoutingKeyPosition string `env:"RABBITMQ_ROUTING_KEY_POSITION" envDefault:"RADr.Handout.Position"`
}

// ParseConfig reads the broker configuration from environment variables.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse broker env: %w", err)
	}
	return cfg, nil
}

// URI renders the AMQP connection URI for this configuration.
func (c Config) URI() string {
	u := amqp.URI{
		Scheme:   "amqp",
		Host:     c.Host,
		Port:     c.Port,
		Username: c.Username,
		Password: c.Password,
		Vhost:    c.VirtualHost,
	}
	return u.String()
}
