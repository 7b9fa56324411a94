package models

import "time"

// DefaultRejectMessage is shown to excluded viewers when the sender has
// not configured a custom text.
const DefaultRejectMessage = "🚫 Это сообщение не для тебя"

// MaxRejectMessageLength bounds custom reject texts. Telegram callback
// alerts cap out around the same size.
const MaxRejectMessageLength = 200

// RejectSetting keeps a sender's custom reject text. A NULL RejectMessage
// means the default applies; resetting stores NULL rather than deleting
// the row.
type RejectSetting struct {
	UserID        int64   `gorm:"primarykey"`
	RejectMessage *string `gorm:"size:200"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
