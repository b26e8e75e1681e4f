package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultSnapshotTTL bounds snapshot retention. Records older than this
	// are no longer retrievable and cannot be reconstructed.
	DefaultSnapshotTTL = 21 * 24 * time.Hour

	defaultBatchPause = 100 * time.Millisecond
	defaultTimezone   = "Europe/Moscow"

	defaultWelcome = "👋 Hi! I monitor your business chat.\n\n" +
		"💫 How to set up:\n" +
		"1. Open Settings → Telegram Business → Chatbots\n" +
		"2. Add this bot\n" +
		"3. Grant it permission to read messages\n\n" +
		"📊 All deleted and edited messages will now arrive here!"
)

// Load reads and validates configuration from:
// 1. Default values
// 2. config.yaml file (optional)
// 3. BOT_* environment variables
func Load() (*Config, error) {
	setDefaults()

	if err := readConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// readConfig initializes viper with the config file location and the
// environment variable mapping. A missing config file is not an error.
func readConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("BOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("snapshot.ttl", DefaultSnapshotTTL)

	viper.SetDefault("notify.timezone", defaultTimezone)
	viper.SetDefault("notify.batch_pause", defaultBatchPause)

	viper.SetDefault("messages.welcome", defaultWelcome)

	// Refresh the administrator identity TTL daily so a long-running
	// process does not silently lose its recipient record.
	viper.SetDefault("scheduler.tasks.admin_refresh.enabled", true)
	viper.SetDefault("scheduler.tasks.admin_refresh.schedule", "0 0 4 * * *")
}
