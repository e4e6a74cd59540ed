package config

import (
	"time"
)

const (
	RealtimeProviderFirebase = "firebase"
	RealtimeProviderRedis    = "redis"
)

type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	DatabaseURL     string `yaml:"database_url"`
}

// RealtimeConfig controls where bid state is mirrored for live observers.
type RealtimeConfig struct {
	Provider      string        `yaml:"provider"`
	BidPathPrefix string        `yaml:"bid_path_prefix"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	RedisChannel  string        `yaml:"redis_channel"`
}

func loadFirebaseConfig() *FirebaseConfig {
	return &FirebaseConfig{
		ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		DatabaseURL:     getEnv("FIREBASE_DATABASE_URL", ""),
	}
}

func loadRealtimeConfig() *RealtimeConfig {
	return &RealtimeConfig{
		Provider:      getEnv("REALTIME_PROVIDER", RealtimeProviderFirebase),
		BidPathPrefix: getEnv("REALTIME_BID_PATH_PREFIX", "trip-bids"),
		WriteTimeout:  getEnvAsDuration("REALTIME_WRITE_TIMEOUT", 3*time.Second),
		RedisChannel:  getEnv("REALTIME_REDIS_CHANNEL", "trip-bids"),
	}
}
