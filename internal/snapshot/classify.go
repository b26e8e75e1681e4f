package snapshot

// PayloadKind is the single content kind of a snapshot. Exactly one kind is
// active per snapshot; handlers branch on it instead of re-inspecting the
// optional content fields.
type PayloadKind int

const (
	KindUnknown PayloadKind = iota
	KindPhoto
	KindVideo
	KindVideoNote
	KindAnimation
	KindDocument
	KindSticker
	KindVoice
	KindText
	KindCaption
)

// String returns the kind's label for logging.
func (k PayloadKind) String() string {
	switch k {
	case KindPhoto:
		return "photo"
	case KindVideo:
		return "video"
	case KindVideoNote:
		return "video_note"
	case KindAnimation:
		return "animation"
	case KindDocument:
		return "document"
	case KindSticker:
		return "sticker"
	case KindVoice:
		return "voice"
	case KindText:
		return "text"
	case KindCaption:
		return "caption"
	default:
		return "unknown"
	}
}

// Classify determines the snapshot's payload kind. When a snapshot carries
// more than one content reference the fixed precedence order below decides,
// so classification is deterministic:
// photo > video > video-note > animation > document > sticker > voice >
// text > caption > unknown.
func Classify(snap *MessageSnapshot) PayloadKind {
	switch {
	case snap.PhotoFileID != "":
		return KindPhoto
	case snap.VideoFileID != "":
		return KindVideo
	case snap.VideoNoteFileID != "":
		return KindVideoNote
	case snap.AnimationFileID != "":
		return KindAnimation
	case snap.DocumentFileID != "":
		return KindDocument
	case snap.StickerFileID != "":
		return KindSticker
	case snap.VoiceFileID != "":
		return KindVoice
	case snap.Text != "":
		return KindText
	case snap.Caption != "":
		return KindCaption
	default:
		return KindUnknown
	}
}
