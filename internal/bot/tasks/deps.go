// Package tasks implements the bot's scheduled tasks: task definitions,
// dependencies, and registration.
package tasks

import (
	"log/slog"

	"bizwatchbot/internal/config"
	"bizwatchbot/internal/store"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Config *config.Config
	Store  store.Store
	Admin  *store.AdminIdentity
}
