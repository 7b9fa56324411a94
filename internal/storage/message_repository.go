package storage

import (
	"time"

	"github.com/layfhaker/bezneg/internal/models"

	"gorm.io/gorm"
)

// MessageRepository handles database operations for ScopedMessage
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// MigrateTable ensures the ScopedMessage and Exclusion tables exist
func (r *MessageRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.ScopedMessage{}, &models.Exclusion{})
}

// Create inserts a scoped message together with its exclusion rows.
// A reference collision surfaces as gorm.ErrDuplicatedKey thanks to
// TranslateError; callers regenerate the reference and retry.
func (r *MessageRepository) Create(msg *models.ScopedMessage) error {
	return r.db.Create(msg).Error
}

// GetByRef retrieves a scoped message with its exclusion set.
// A missing reference is a normal outcome and returns nil, nil.
func (r *MessageRepository) GetByRef(ref string) (*models.ScopedMessage, error) {
	var msg models.ScopedMessage
	result := r.db.Preload("Excluded").Where("ref = ?", ref).First(&msg)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &msg, nil
}

// DeleteOlderThan removes messages created before the cutoff along with
// their exclusion rows. Returns the number of messages removed.
func (r *MessageRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	var refs []string
	if err := r.db.Model(&models.ScopedMessage{}).Where("created_at < ?", cutoff).Pluck("ref", &refs).Error; err != nil {
		return 0, err
	}
	if len(refs) == 0 {
		return 0, nil
	}

	if err := r.db.Where("message_ref IN ?", refs).Delete(&models.Exclusion{}).Error; err != nil {
		return 0, err
	}
	result := r.db.Where("ref IN ?", refs).Delete(&models.ScopedMessage{})
	return result.RowsAffected, result.Error
}
