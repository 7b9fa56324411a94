package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/layfhaker/bezneg/internal/logger"
	"github.com/layfhaker/bezneg/internal/models"
	"github.com/layfhaker/bezneg/internal/parser"
)

// maxRefAttempts bounds the regenerate-and-retry loop on reference
// collisions. With full UUIDs one attempt is all but guaranteed.
const maxRefAttempts = 3

// ErrStorageUnavailable means the database is disabled or down, so the
// message could never be revealed later.
var ErrStorageUnavailable = errors.New("message storage is unavailable")

// CreateScopedMessage parses raw inline input and persists the resulting
// scoped message under a fresh opaque reference. Parse failures come back
// as parser.ErrEmptyBody / parser.ErrNoExclusions for the handler to turn
// into hints.
func CreateScopedMessage(senderID int64, raw string) (*models.ScopedMessage, error) {
	body, excluded, err := parser.Parse(raw)
	if err != nil {
		return nil, err
	}

	if messageStore == nil {
		return nil, ErrStorageUnavailable
	}

	for attempt := 0; attempt < maxRefAttempts; attempt++ {
		msg := &models.ScopedMessage{
			Ref:       uuid.NewString(),
			SenderID:  senderID,
			Body:      body,
			CreatedAt: time.Now(),
		}
		for _, handle := range excluded {
			msg.Excluded = append(msg.Excluded, models.Exclusion{
				MessageRef: msg.Ref,
				Handle:     handle,
			})
		}

		err = messageStore.Create(msg)
		if err == nil {
			logger.Infof("Stored scoped message %s from sender %d, excluded: %v", msg.Ref, senderID, excluded)
			return msg, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warningf("Reference collision on %s, regenerating", msg.Ref)
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("could not generate a unique reference after %d attempts: %w", maxRefAttempts, err)
}

// GetScopedMessage looks up a message by reference. A stale or fabricated
// reference returns nil, nil.
func GetScopedMessage(ref string) (*models.ScopedMessage, error) {
	if messageStore == nil {
		return nil, ErrStorageUnavailable
	}
	return messageStore.GetByRef(ref)
}
