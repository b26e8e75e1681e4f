package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"bizwatchbot/internal/snapshot"
)

// NewEditedHandler returns the handler for edited business messages. A
// notification is produced only when a prior snapshot with a known sender
// exists; the edited version replaces it under the same key either way.
func NewEditedHandler(deps HandlerDeps) bot.HandlerFunc {
	return editedHandler{deps}.Handle
}

type editedHandler struct {
	deps HandlerDeps
}

func (h editedHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "edited_business_message")

	msg := update.EditedBusinessMessage
	if msg == nil {
		return
	}

	adminID, ok := h.deps.Admin.ID()
	if !ok {
		log.WarnContext(ctx, "Administrator not registered, skipping edit",
			"chat_id", msg.Chat.ID, "message_id", msg.ID)
		return
	}

	prior, err := h.deps.Store.GetSnapshot(ctx, msg.Chat.ID, msg.ID)
	if err != nil {
		log.WarnContext(ctx, "Snapshot lookup failed, dropping edit event",
			"chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
		return
	}

	snap := snapshot.FromMessage(msg)
	if err := h.deps.Store.PutSnapshot(ctx, snap); err != nil {
		log.WarnContext(ctx, "Snapshot write skipped",
			"chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
	}

	if prior == nil || prior.From == nil || snap.From == nil {
		log.DebugContext(ctx, "No usable prior snapshot for edited message",
			"chat_id", msg.Chat.ID, "message_id", msg.ID)
		return
	}

	var editedAt time.Time
	if msg.EditDate != 0 {
		editedAt = time.Unix(int64(msg.EditDate), 0)
	}

	rendered := h.deps.Renderer.RenderEdited(snap, editedAt)
	if err := h.deps.Dispatcher.Deliver(ctx, adminID, rendered, snap); err != nil {
		log.ErrorContext(ctx, "Failed to deliver edit notification",
			"chat_id", msg.Chat.ID, "message_id", msg.ID, "error", err)
		return
	}
	log.InfoContext(ctx, "Delivered edit notification",
		"chat_id", msg.Chat.ID, "message_id", msg.ID, "kind", rendered.Kind.String())
}
