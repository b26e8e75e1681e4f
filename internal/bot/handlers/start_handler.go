package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns the handler for the /start command, which registers
// the invoking user as the administrator and confirms with the welcome text.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	// The cache is updated even when persistence fails, so the bot keeps
	// working for this process lifetime; the record is retried on the next
	// registration or TTL refresh.
	if err := h.deps.Admin.Set(ctx, userID); err != nil {
		log.ErrorContext(ctx, "Failed to persist administrator identity", "user_id", userID, "error", err)
	}
	log.InfoContext(ctx, "Administrator registered", "user_id", userID)

	markup := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "✖ Close", CallbackData: callbackClose}},
		},
	}
	if err := h.deps.Messenger.SendTextWithKeyboard(ctx, chatID, h.deps.Config.Messages.Welcome, markup); err != nil {
		log.ErrorContext(ctx, "Failed to send welcome message", "chat_id", chatID, "error", err)
	}
}
