package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"bizwatchbot/internal/snapshot"
)

// Transport abstracts the per-kind send operations of the messaging client.
type Transport interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, fileID, caption string) error
	SendVideo(ctx context.Context, chatID int64, fileID, caption string) error
	SendDocument(ctx context.Context, chatID int64, fileID, caption string) error
	SendAnimation(ctx context.Context, chatID int64, fileID, caption string) error
	SendSticker(ctx context.Context, chatID int64, fileID string) error
	SendVoice(ctx context.Context, chatID int64, fileID, caption string) error
	SendVideoNote(ctx context.Context, chatID int64, fileID string) error
}

const (
	videoNoteMarker   = "⭕ Video note"
	unknownKindMarker = "📁 Media type unknown"
	fallbackMarker    = "❌ Failed to deliver content"
)

// Dispatcher maps a rendered notification's payload kind to the matching
// transport operation and applies the uniform plain-text fallback on
// transport failure.
type Dispatcher struct {
	transport Transport
	logger    *slog.Logger
}

// NewDispatcher creates a dispatcher over the given transport.
func NewDispatcher(transport Transport, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		transport: transport,
		logger:    logger.With("component", "dispatcher"),
	}
}

// Deliver sends the notification and its content to the recipient. On any
// transport error a single best-effort plain-text fallback is sent instead;
// the original error is returned for logging and never escalated further.
func (d *Dispatcher) Deliver(ctx context.Context, recipient int64, rendered *Rendered, snap *snapshot.MessageSnapshot) error {
	err := d.dispatch(ctx, recipient, rendered, snap)
	if err == nil {
		return nil
	}

	d.logger.ErrorContext(ctx, "Failed to deliver content, sending fallback",
		"kind", rendered.Kind.String(), "recipient", recipient, "error", err)

	fallback := rendered.Caption + "\n\n" + fallbackMarker
	if fbErr := d.transport.SendText(ctx, recipient, fallback); fbErr != nil {
		d.logger.ErrorContext(ctx, "Failed to send fallback notification",
			"recipient", recipient, "error", fbErr)
	}

	return err
}

// dispatch performs the kind-specific send fan-out. Voice content cannot be
// re-sent once deleted, and deleted video notes can only be re-sent as
// regular videos; both deletion paths degrade accordingly.
func (d *Dispatcher) dispatch(ctx context.Context, recipient int64, rendered *Rendered, snap *snapshot.MessageSnapshot) error {
	t := d.transport
	deleted := rendered.Event == EventDeleted

	switch rendered.Kind {
	case snapshot.KindPhoto:
		return t.SendPhoto(ctx, recipient, snap.PhotoFileID, rendered.Caption)

	case snapshot.KindVideo:
		return t.SendVideo(ctx, recipient, snap.VideoFileID, rendered.Caption)

	case snapshot.KindVideoNote:
		if err := t.SendText(ctx, recipient, rendered.Caption+"\n\n"+videoNoteMarker); err != nil {
			return err
		}
		if deleted {
			return t.SendVideo(ctx, recipient, snap.VideoNoteFileID, "")
		}
		return t.SendVideoNote(ctx, recipient, snap.VideoNoteFileID)

	case snapshot.KindAnimation:
		return t.SendAnimation(ctx, recipient, snap.AnimationFileID, rendered.Caption)

	case snapshot.KindDocument:
		return t.SendDocument(ctx, recipient, snap.DocumentFileID, rendered.Caption)

	case snapshot.KindSticker:
		if err := t.SendSticker(ctx, recipient, snap.StickerFileID); err != nil {
			return err
		}
		return t.SendText(ctx, recipient, rendered.Caption)

	case snapshot.KindVoice:
		if deleted {
			summary := fmt.Sprintf("%s\n\n🎤 Voice message (duration: %d sec)", rendered.Caption, snap.VoiceDuration)
			return t.SendText(ctx, recipient, summary)
		}
		return t.SendVoice(ctx, recipient, snap.VoiceFileID, rendered.Caption)

	case snapshot.KindText, snapshot.KindCaption:
		return t.SendText(ctx, recipient, rendered.Caption)

	default:
		return t.SendText(ctx, recipient, rendered.Caption+"\n\n"+unknownKindMarker)
	}
}
