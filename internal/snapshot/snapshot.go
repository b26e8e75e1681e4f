// Package snapshot defines the stored representation of an observed business
// message and the classification of its payload kind.
package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
)

// Sender identifies the author of a snapshotted message.
type Sender struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Display returns the sender's human-readable form: "@username" when
// available, then "first last" trimmed, then "ID: <id>" as a last resort.
func (s *Sender) Display() string {
	if s.Username != "" {
		return "@" + s.Username
	}
	if name := strings.TrimSpace(s.FirstName + " " + s.LastName); name != "" {
		return name
	}
	return fmt.Sprintf("ID: %d", s.ID)
}

// MessageSnapshot is the stored copy of an observed message: identity key,
// sender, timestamps, text, and content references, keyed by
// (chat_id, message_id). It is replaced wholesale when the message is edited
// and removed after a deletion event is processed or the TTL expires.
type MessageSnapshot struct {
	ChatID    int64     `json:"chat_id"`
	MessageID int       `json:"message_id"`
	From      *Sender   `json:"from,omitempty"`
	SentAt    time.Time `json:"sent_at"`

	Text    string `json:"text,omitempty"`
	Caption string `json:"caption,omitempty"`

	PhotoFileID     string `json:"photo_file_id,omitempty"`
	VideoFileID     string `json:"video_file_id,omitempty"`
	VideoNoteFileID string `json:"video_note_file_id,omitempty"`
	AnimationFileID string `json:"animation_file_id,omitempty"`
	DocumentFileID  string `json:"document_file_id,omitempty"`
	StickerFileID   string `json:"sticker_file_id,omitempty"`
	VoiceFileID     string `json:"voice_file_id,omitempty"`
	VoiceDuration   int    `json:"voice_duration,omitempty"`

	EffectID string `json:"effect_id,omitempty"`

	// Raw preserves the message as received from the platform, for kinds the
	// compact fields above do not cover.
	Raw json.RawMessage `json:"raw,omitempty"`
}

// FromMessage builds a snapshot from a Telegram message. Photo messages keep
// the file reference of the largest size variant.
func FromMessage(msg *models.Message) *MessageSnapshot {
	snap := &MessageSnapshot{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      msg.Text,
		Caption:   msg.Caption,
		EffectID:  msg.EffectID,
	}

	if msg.From != nil {
		snap.From = &Sender{
			ID:        msg.From.ID,
			Username:  msg.From.Username,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		}
	}
	if msg.Date != 0 {
		snap.SentAt = time.Unix(int64(msg.Date), 0)
	}

	if len(msg.Photo) > 0 {
		// Telegram orders photo sizes smallest first.
		snap.PhotoFileID = msg.Photo[len(msg.Photo)-1].FileID
	}
	if msg.Video != nil {
		snap.VideoFileID = msg.Video.FileID
	}
	if msg.VideoNote != nil {
		snap.VideoNoteFileID = msg.VideoNote.FileID
	}
	if msg.Animation != nil {
		snap.AnimationFileID = msg.Animation.FileID
	}
	if msg.Document != nil {
		snap.DocumentFileID = msg.Document.FileID
	}
	if msg.Sticker != nil {
		snap.StickerFileID = msg.Sticker.FileID
	}
	if msg.Voice != nil {
		snap.VoiceFileID = msg.Voice.FileID
		snap.VoiceDuration = msg.Voice.Duration
	}

	if raw, err := json.Marshal(msg); err == nil {
		snap.Raw = raw
	}

	return snap
}
