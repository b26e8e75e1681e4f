package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDeletedHandler returns the handler for business message deletion events.
// Snapshots for the deleted IDs are fetched in one batched read, each found
// snapshot produces a notification, and the processed keys are removed in one
// batched delete.
func NewDeletedHandler(deps HandlerDeps) bot.HandlerFunc {
	return deletedHandler{deps}.Handle
}

type deletedHandler struct {
	deps HandlerDeps
}

func (h deletedHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "deleted_business_messages")

	del := update.DeletedBusinessMessages
	if del == nil {
		return
	}

	adminID, ok := h.deps.Admin.ID()
	if !ok {
		log.WarnContext(ctx, "Administrator not registered, skipping deletion",
			"chat_id", del.Chat.ID, "message_count", len(del.MessageIDs))
		return
	}

	snaps, err := h.deps.Store.GetSnapshotBatch(ctx, del.Chat.ID, del.MessageIDs)
	if err != nil {
		log.WarnContext(ctx, "Batched snapshot lookup failed, dropping deletion event",
			"chat_id", del.Chat.ID, "error", err)
		return
	}

	// The platform does not supply a deletion timestamp; the observed time
	// stands in for it.
	deletedAt := time.Now()

	processed := make([]int, 0, len(del.MessageIDs))
	for i, snap := range snaps {
		if snap == nil || snap.From == nil {
			continue
		}

		rendered := h.deps.Renderer.RenderDeleted(snap, deletedAt)
		if err := h.deps.Dispatcher.Deliver(ctx, adminID, rendered, snap); err != nil {
			log.ErrorContext(ctx, "Failed to deliver deletion notification",
				"chat_id", del.Chat.ID, "message_id", del.MessageIDs[i], "error", err)
		}
		processed = append(processed, del.MessageIDs[i])

		// Pace successive deliveries within one batch to respect downstream
		// rate limits.
		select {
		case <-ctx.Done():
			return
		case <-time.After(h.deps.Config.Notify.BatchPause):
		}
	}

	if len(processed) == 0 {
		return
	}
	if err := h.deps.Store.DeleteSnapshots(ctx, del.Chat.ID, processed); err != nil {
		log.WarnContext(ctx, "Failed to remove processed snapshots",
			"chat_id", del.Chat.ID, "count", len(processed), "error", err)
		return
	}
	log.InfoContext(ctx, "Processed deletion batch",
		"chat_id", del.Chat.ID, "notified", len(processed), "total", len(del.MessageIDs))
}
