package service

import (
	"time"

	"github.com/layfhaker/bezneg/internal/config"
	"github.com/layfhaker/bezneg/internal/crash"
	"github.com/layfhaker/bezneg/internal/logger"
	"github.com/layfhaker/bezneg/internal/models"
	"github.com/layfhaker/bezneg/internal/storage"
)

// MessageStore is the persistence contract for scoped messages.
// Implemented by storage.MessageRepository; tests swap in fakes.
type MessageStore interface {
	Create(msg *models.ScopedMessage) error
	GetByRef(ref string) (*models.ScopedMessage, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// RejectStore is the persistence contract for reject settings.
type RejectStore interface {
	GetSetting(userID int64) (*models.RejectSetting, error)
	UpsertSetting(userID int64, text *string) error
}

var (
	messageStore MessageStore
	rejectStore  RejectStore
	rejectCache  = models.NewRejectCache()
	globalConfig *config.Config
)

// Initialize initializes the service with configuration
func Initialize(cfg *config.Config) {
	globalConfig = cfg
}

// InitRepositories initializes the repositories if database is enabled
func InitRepositories() {
	if storage.DB != nil {
		messageRepository := storage.NewMessageRepository(storage.DB)
		if err := messageRepository.MigrateTable(); err != nil {
			logger.Warningf("Error migrating ScopedMessage tables: %v", err)
		}
		messageStore = messageRepository

		rejectRepository := storage.NewRejectRepository(storage.DB)
		if err := rejectRepository.MigrateTable(); err != nil {
			logger.Warningf("Error migrating RejectSetting table: %v", err)
		}
		rejectStore = rejectRepository
	}
}

// StartRetentionCleanup runs the periodic deletion of expired scoped
// messages when a retention horizon is configured.
func StartRetentionCleanup() {
	if globalConfig == nil || globalConfig.Message.RetentionHours <= 0 {
		logger.Info("Message retention is disabled, stored messages are kept forever")
		return
	}

	retention := time.Duration(globalConfig.Message.RetentionHours) * time.Hour
	crash.SafeGoroutine("retention-cleanup", func() {
		logger.Infof("Starting message retention cleanup goroutine, horizon: %v", retention)
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if messageStore == nil {
				continue
			}
			removed, err := messageStore.DeleteOlderThan(time.Now().Add(-retention))
			if err != nil {
				logger.Warningf("Error cleaning up expired messages: %v", err)
				continue
			}
			if removed > 0 {
				logger.Infof("Removed %d expired scoped messages", removed)
			}
		}
	})
}
