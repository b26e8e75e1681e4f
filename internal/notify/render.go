// Package notify builds notification texts from message snapshots and
// delivers them to the administrator through the transport client.
package notify

import (
	"fmt"
	"time"

	"bizwatchbot/internal/snapshot"
)

// EventType distinguishes the events that produce a notification.
type EventType int

const (
	EventEdited EventType = iota
	EventDeleted
	EventEffectReply
)

// Rendered is a notification derived from a snapshot and event metadata.
// It is transient and never persisted.
type Rendered struct {
	Caption string
	Kind    snapshot.PayloadKind
	Event   EventType
}

// effectLabels maps a platform effect identifier to its human label.
// Unrecognized identifiers fall back to defaultEffectLabel.
var effectLabels = map[string]string{
	"video-message": "disappearing video",
	"view-once":     "view-once photo",
	"view-once-v2":  "view-once media",
	"view_once":     "view-once media",
	"once":          "single-view media",
}

const defaultEffectLabel = "disappearing media"

// EffectLabel returns the human label for an effect identifier.
func EffectLabel(effectID string) string {
	if label, ok := effectLabels[effectID]; ok {
		return label
	}
	return defaultEffectLabel
}

// Renderer builds notification captions with times shown in a fixed display
// time zone.
type Renderer struct {
	loc *time.Location
}

// NewRenderer creates a renderer displaying times in the named IANA zone.
func NewRenderer(timezone string) (*Renderer, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid display timezone %q: %w", timezone, err)
	}
	return &Renderer{loc: loc}, nil
}

// formatTime renders a timestamp as hour:minute:second in the display zone.
// A zero timestamp renders as "unknown".
func (r *Renderer) formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.In(r.loc).Format("15:04:05")
}

// RenderEdited builds the notification for an edited message.
func (r *Renderer) RenderEdited(snap *snapshot.MessageSnapshot, editedAt time.Time) *Rendered {
	caption := fmt.Sprintf(
		"✏️ Message edited\n\n"+
			"👤 Sender:\n%s\n\n"+
			"⏰ Sent at:\n%s\n\n"+
			"🕒 Edited at:\n%s",
		snap.From.Display(), r.formatTime(snap.SentAt), r.formatTime(editedAt))

	return r.withBody(caption, snap, EventEdited)
}

// RenderDeleted builds the notification for a deleted message. The platform
// supplies no deletion timestamp, so deletedAt is the process-observed time.
func (r *Renderer) RenderDeleted(snap *snapshot.MessageSnapshot, deletedAt time.Time) *Rendered {
	caption := fmt.Sprintf(
		"🗑️ Message deleted\n\n"+
			"👤 Sender:\n%s\n\n"+
			"⏰ Sent at:\n%s\n\n"+
			"🕒 Deleted at:\n%s",
		snap.From.Display(), r.formatTime(snap.SentAt), r.formatTime(deletedAt))

	return r.withBody(caption, snap, EventDeleted)
}

// RenderEffectReply builds the notification for a reply to an ephemeral
// (effect) message. snap is the snapshot of the original effect message and
// replyText the literal reply.
func (r *Renderer) RenderEffectReply(snap *snapshot.MessageSnapshot, replyText string) *Rendered {
	label := EffectLabel(snap.EffectID)
	caption := fmt.Sprintf(
		"👀 Reply to %s\n\n"+
			"👤 Sender:\n%s\n\n"+
			"⏰ Sent at:\n%s\n\n"+
			"💬 Your reply:\n%s\n\n"+
			"🎭 Content kind: %s",
		label, snap.From.Display(), r.formatTime(snap.SentAt), replyText, label)

	return r.withBody(caption, snap, EventEffectReply)
}

// withBody classifies the snapshot and, for text and caption kinds, appends
// the full message body to the caption. Media kinds keep the header only;
// their content is delivered separately by the dispatcher.
func (r *Renderer) withBody(caption string, snap *snapshot.MessageSnapshot, event EventType) *Rendered {
	kind := snapshot.Classify(snap)
	switch kind {
	case snapshot.KindText:
		caption += "\n\n💬 Text:\n" + snap.Text
	case snapshot.KindCaption:
		caption += "\n\n💬 Caption:\n" + snap.Caption
	}

	return &Rendered{
		Caption: caption,
		Kind:    kind,
		Event:   event,
	}
}
