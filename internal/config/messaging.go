package config

import (
	"time"
)

type MessagingConfig struct {
	BusEnabled      bool          `yaml:"bus_enabled"`
	Brokers         []string      `yaml:"brokers"`
	TripStatusTopic string        `yaml:"trip_status_topic"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
}

func loadMessagingConfig() *MessagingConfig {
	return &MessagingConfig{
		BusEnabled:      getEnvAsBool("BUS_ENABLED", false),
		Brokers:         getEnvAsSlice("KAFKA_BROKERS", []string{}),
		TripStatusTopic: getEnv("KAFKA_TRIP_STATUS_TOPIC", "trip_status"),
		WriteTimeout:    getEnvAsDuration("KAFKA_WRITE_TIMEOUT", 2*time.Second),
	}
}
