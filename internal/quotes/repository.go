package quote

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
)

// Repository persists quotes and their line items.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the quote with its items in one transaction.
func (r *Repository) Create(ctx context.Context, row *models.Quote) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// FindByID loads one quote with items, scoped to the owning user.
func (r *Repository) FindByID(ctx context.Context, userID string, id uuid.UUID) (*models.Quote, error) {
	var row models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&row, "id = ? AND user_id = ?", id, userID).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListByUser returns the user's quotes, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Quote, error) {
	var rows []models.Quote
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}
