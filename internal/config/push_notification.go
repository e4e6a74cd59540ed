package config

const (
	PushProviderFCM  = "fcm"
	PushProviderAPNS = "apns"
	PushProviderNone = "none"
)

// PushConfig selects the default push provider. FCM credentials come from
// FirebaseConfig; when an APNS key is configured iOS devices are always
// delivered through APNS.
type PushConfig struct {
	Provider string      `yaml:"provider"`
	APNS     *APNSConfig `yaml:"apns"`
}

type APNSConfig struct {
	KeyFile    string `yaml:"key_file"`
	KeyID      string `yaml:"key_id"`
	TeamID     string `yaml:"team_id"`
	BundleID   string `yaml:"bundle_id"`
	Production bool   `yaml:"production"`
}

func (c *APNSConfig) Enabled() bool {
	return c.KeyFile != ""
}

func loadPushConfig() *PushConfig {
	return &PushConfig{
		Provider: getEnv("PUSH_PROVIDER", PushProviderFCM),
		APNS: &APNSConfig{
			KeyFile:    getEnv("APNS_KEY_FILE", ""),
			KeyID:      getEnv("APNS_KEY_ID", ""),
			TeamID:     getEnv("APNS_TEAM_ID", ""),
			BundleID:   getEnv("APNS_BUNDLE_ID", ""),
			Production: getEnvAsBool("APNS_PRODUCTION", false),
		},
	}
}
