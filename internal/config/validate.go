package config

import (
	"fmt"
	"time"
)

func (c *Config) validate() error {
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}

	switch c.Realtime.Provider {
	case RealtimeProviderFirebase, RealtimeProviderRedis:
	default:
		return fmt.Errorf("unsupported REALTIME_PROVIDER %q", c.Realtime.Provider)
	}

	switch c.Push.Provider {
	case PushProviderFCM, PushProviderAPNS, PushProviderNone:
	default:
		return fmt.Errorf("unsupported PUSH_PROVIDER %q", c.Push.Provider)
	}
	if c.Push.Provider == PushProviderAPNS && !c.Push.APNS.Enabled() {
		return fmt.Errorf("APNS_KEY_FILE is required when PUSH_PROVIDER is apns")
	}

	if c.Trip.StartAttempts < 1 {
		return fmt.Errorf("TRIP_START_ATTEMPTS must be at least 1")
	}
	if c.Trip.Workers < 1 {
		return fmt.Errorf("NOTIFY_WORKERS must be at least 1")
	}
	if c.Messaging.BusEnabled && len(c.Messaging.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when the bus channel is enabled")
	}

	return nil
}
