package erp

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
)

// Repository persists ERP sync logs.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InsertLog records one batch outcome.
func (r *Repository) InsertLog(ctx context.Context, row *models.ERPSyncLog) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// ListLogs returns recent batches for the user, newest first.
func (r *Repository) ListLogs(ctx context.Context, userID string, limit int) ([]models.ERPSyncLog, error) {
	var rows []models.ERPSyncLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}
