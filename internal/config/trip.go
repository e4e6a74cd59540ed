package config

import (
	"time"
)

type TripConfig struct {
	// StartAttempts bounds the guard-check-and-write retries on a stale record.
	StartAttempts int           `yaml:"start_attempts"`
	NotifyTimeout time.Duration `yaml:"notify_timeout"`
	Workers       int           `yaml:"workers"`
	QueueSize     int           `yaml:"queue_size"`
	SocketEnabled bool          `yaml:"socket_enabled"`
}

func loadTripConfig() *TripConfig {
	return &TripConfig{
		StartAttempts: getEnvAsInt("TRIP_START_ATTEMPTS", 3),
		NotifyTimeout: getEnvAsDuration("NOTIFY_TIMEOUT", 5*time.Second),
		Workers:       getEnvAsInt("NOTIFY_WORKERS", 4),
		QueueSize:     getEnvAsInt("NOTIFY_QUEUE_SIZE", 256),
		SocketEnabled: getEnvAsBool("SOCKET_ENABLED", false),
	}
}
