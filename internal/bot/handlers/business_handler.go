package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"bizwatchbot/internal/snapshot"
)

// NewBusinessHandler returns the handler for inbound business messages. It
// snapshots every observed message and relays replies to ephemeral (effect)
// messages immediately, since their content disappears after viewing.
func NewBusinessHandler(deps HandlerDeps) bot.HandlerFunc {
	return businessHandler{deps}.Handle
}

type businessHandler struct {
	deps HandlerDeps
}

func (h businessHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "business_message")

	msg := update.BusinessMessage
	if msg == nil {
		return
	}

	adminID, ok := h.deps.Admin.ID()
	if !ok {
		log.DebugContext(ctx, "Administrator not registered, skipping message",
			"chat_id", msg.Chat.ID, "message_id", msg.ID)
		return
	}

	if msg.ReplyToMessage != nil && msg.ReplyToMessage.EffectID != "" {
		h.relayEffectReply(ctx, log, adminID, msg)
	}

	snap := snapshot.FromMessage(msg)
	if err := h.deps.Store.PutSnapshot(ctx, snap); err != nil {
		log.WarnContext(ctx, "Snapshot write skipped",
			"chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
	}
}

// relayEffectReply notifies the administrator that the account replied to a
// disappearing message, relaying the original content while it is still
// reachable.
func (h businessHandler) relayEffectReply(ctx context.Context, log *slog.Logger, adminID int64, msg *models.Message) {
	original := snapshot.FromMessage(msg.ReplyToMessage)
	if original.From == nil {
		return
	}

	replyText := msg.Text
	if replyText == "" {
		replyText = "📷 Media"
	}

	rendered := h.deps.Renderer.RenderEffectReply(original, replyText)
	if err := h.deps.Dispatcher.Deliver(ctx, adminID, rendered, original); err != nil {
		log.ErrorContext(ctx, "Failed to relay effect reply",
			"chat_id", msg.Chat.ID, "message_id", msg.ReplyToMessage.ID, "error", err)
		return
	}
	log.DebugContext(ctx, "Relayed effect reply",
		"chat_id", msg.Chat.ID, "message_id", msg.ReplyToMessage.ID, "kind", rendered.Kind.String())
}
