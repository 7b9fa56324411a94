package storage

import (
	"time"

	"github.com/layfhaker/bezneg/internal/models"

	"gorm.io/gorm"
)

// RejectRepository handles database operations for RejectSetting
type RejectRepository struct {
	db *gorm.DB
}

// NewRejectRepository creates a new RejectRepository
func NewRejectRepository(db *gorm.DB) *RejectRepository {
	return &RejectRepository{db: db}
}

// MigrateTable ensures the RejectSetting table exists
func (r *RejectRepository) MigrateTable() error {
	return r.db.AutoMigrate(&models.RejectSetting{})
}

// GetSetting retrieves a sender's reject setting. A sender that never
// configured anything returns nil, nil.
func (r *RejectRepository) GetSetting(userID int64) (*models.RejectSetting, error) {
	var setting models.RejectSetting
	result := r.db.Where("user_id = ?", userID).First(&setting)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &setting, nil
}

// UpsertSetting creates or updates a sender's reject setting. A nil text
// resets the sender to the default without deleting the row.
func (r *RejectRepository) UpsertSetting(userID int64, text *string) error {
	var existing models.RejectSetting
	result := r.db.Where("user_id = ?", userID).First(&existing)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			setting := models.RejectSetting{
				UserID:        userID,
				RejectMessage: text,
				CreatedAt:     time.Now(),
				UpdatedAt:     time.Now(),
			}
			return r.db.Create(&setting).Error
		}
		return result.Error
	}

	existing.RejectMessage = text
	existing.UpdatedAt = time.Now()

	return r.db.Save(&existing).Error
}
