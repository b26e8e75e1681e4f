// Package config manages application configuration from default values,
// an optional config.yaml file, and BOT_* environment variables.
package config

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Config defines the application configuration for all components of the
// business-chat mirror bot: logging, the Telegram transport, the Redis
// snapshot backend, notification rendering, and scheduled tasks.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LogConfig controls the slog level and output format.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the Bot API credentials.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
}

// RedisConfig holds connection settings for the snapshot backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"     validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       validate:"min=0"`
}

// SnapshotConfig controls snapshot retention. TTL applies to every snapshot
// write and to the administrator identity record.
type SnapshotConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"required,min=1h"`
}

// NotifyConfig controls notification rendering and delivery pacing.
type NotifyConfig struct {
	Timezone   string        `mapstructure:"timezone"    validate:"required"`
	BatchPause time.Duration `mapstructure:"batch_pause" validate:"min=0,max=1m"`
}

// MessagesConfig holds user-visible bot texts.
type MessagesConfig struct {
	Welcome string `mapstructure:"welcome" validate:"required"`
}

// SchedulerConfig holds the per-task schedule configuration.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

// TaskConfig enables a registered task and assigns its cron schedule
// (six-field expressions, seconds first).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// Validate checks the configuration against the struct validation tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
