package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// callbackClose is the callback data of the inline close button attached to
// the registration confirmation.
const callbackClose = "close"

// NewCallbackHandler returns the handler for the close-button callback: it
// acknowledges the query and deletes the message the button was attached to.
func NewCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return callbackHandler{deps}.Handle
}

type callbackHandler struct {
	deps HandlerDeps
}

func (h callbackHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "callback_close")

	cq := update.CallbackQuery
	if cq == nil {
		return
	}

	if err := h.deps.Messenger.AnswerCallbackQuery(ctx, cq.ID); err != nil {
		log.WarnContext(ctx, "Failed to answer callback query", "callback_query_id", cq.ID, "error", err)
	}

	msg := cq.Message.Message
	if msg == nil {
		// The message is inaccessible or too old to be deleted.
		return
	}
	if err := h.deps.Messenger.DeleteMessage(ctx, msg.Chat.ID, msg.ID); err != nil {
		log.WarnContext(ctx, "Failed to delete message", "chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
	}
}
