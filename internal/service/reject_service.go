package service

import (
	"errors"
	"unicode/utf8"

	"github.com/layfhaker/bezneg/internal/logger"
	"github.com/layfhaker/bezneg/internal/models"
)

// ErrRejectTooLong is returned when a custom reject text exceeds the
// bound; the previously stored text stays in place.
var ErrRejectTooLong = errors.New("reject message is too long")

// GetRejectMessage returns the sender's reject text, falling back to the
// default when nothing custom is configured. Storage trouble also falls
// back to the default: a reveal must never fail because of it.
func GetRejectMessage(userID int64) string {
	if text, ok := rejectCache.Get(userID); ok {
		return text
	}

	text := models.DefaultRejectMessage
	if rejectStore != nil {
		setting, err := rejectStore.GetSetting(userID)
		if err != nil {
			logger.Warningf("Error fetching reject setting for user %d: %v", userID, err)
			return text
		}
		if setting != nil && setting.RejectMessage != nil {
			text = *setting.RejectMessage
		}
	}

	rejectCache.Put(userID, text)
	return text
}

// SetRejectMessage stores a sender's custom reject text.
func SetRejectMessage(userID int64, text string) error {
	if utf8.RuneCountInString(text) > models.MaxRejectMessageLength {
		return ErrRejectTooLong
	}
	if rejectStore == nil {
		return ErrStorageUnavailable
	}

	if err := rejectStore.UpsertSetting(userID, &text); err != nil {
		return err
	}
	rejectCache.Invalidate(userID)
	logger.Infof("User %d set a custom reject message", userID)
	return nil
}

// ResetRejectMessage restores the default for a sender. The setting row
// is kept with a NULL text rather than deleted.
func ResetRejectMessage(userID int64) error {
	if rejectStore == nil {
		return ErrStorageUnavailable
	}

	if err := rejectStore.UpsertSetting(userID, nil); err != nil {
		return err
	}
	rejectCache.Invalidate(userID)
	logger.Infof("User %d reset their reject message", userID)
	return nil
}
