package models

import (
	"strings"
	"time"
)

// ScopedMessage is a message addressed to everyone in a chat except the
// handles in its exclusion set. It is looked up by Ref only and never
// modified after creation.
type ScopedMessage struct {
	Ref       string `gorm:"primarykey;size:64"`
	SenderID  int64  `gorm:"index;not null"`
	Body      string `gorm:"type:text;not null"`
	CreatedAt time.Time

	Excluded []Exclusion `gorm:"foreignKey:MessageRef;references:Ref;constraint:OnDelete:CASCADE"`
}

// Exclusion is one barred handle of a scoped message. Handles are stored
// lowercase; the composite unique index keeps the set a set.
type Exclusion struct {
	ID         uint   `gorm:"primarykey"`
	MessageRef string `gorm:"size:64;index:idx_message_handle,unique;not null"`
	Handle     string `gorm:"size:32;index:idx_message_handle,unique;not null"`
}

// IsExcluded reports whether the given handle is barred from this message.
// Matching is case-insensitive; an empty handle never matches.
func (m *ScopedMessage) IsExcluded(handle string) bool {
	if handle == "" {
		return false
	}
	handle = strings.ToLower(handle)
	for _, e := range m.Excluded {
		if e.Handle == handle {
			return true
		}
	}
	return false
}

// ExcludedHandles returns the exclusion set as plain handle strings.
func (m *ScopedMessage) ExcludedHandles() []string {
	handles := make([]string, 0, len(m.Excluded))
	for _, e := range m.Excluded {
		handles = append(handles, e.Handle)
	}
	return handles
}
