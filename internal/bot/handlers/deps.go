// Package handlers contains the Telegram update handlers for business
// messages, registration, and callbacks, along with their registration logic.
package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot/models"

	"bizwatchbot/internal/config"
	"bizwatchbot/internal/notify"
	"bizwatchbot/internal/store"
)

// Messenger is the small messaging surface handlers use directly, outside
// the kind-mapped dispatcher path.
type Messenger interface {
	SendTextWithKeyboard(ctx context.Context, chatID int64, text string, markup models.ReplyMarkup) error
	AnswerCallbackQuery(ctx context.Context, queryID string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
}

// HandlerDeps provides dependencies for Telegram update handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Store      store.Store
	Admin      *store.AdminIdentity
	Renderer   *notify.Renderer
	Dispatcher *notify.Dispatcher
	Messenger  Messenger
}
