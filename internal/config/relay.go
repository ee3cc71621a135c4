package config

import "time"

// Relay configures the outbox relay loop.
type Relay struct {
	BatchSize uint32        `env:"RELAY_BATCH_SIZE" envDefault:"100"`
	Interval  time.Duration `env:"RELAY_INTERVAL" envDefault:"1s"`
	// PublishTimeout bounds a single Kafka produce. Zero waits for the
	// client's own delivery timeout.
	PublishTimeout time.Duration `env:"RELAY_PUBLISH_TIMEOUT" envDefault:"5s"`
}
