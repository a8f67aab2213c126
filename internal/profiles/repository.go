package profile

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
)

// Repository persists per-tenant company profiles.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUserID loads the profile row for the tenant.
func (r *Repository) FindByUserID(ctx context.Context, userID string) (*models.CompanyProfile, error) {
	var row models.CompanyProfile
	if err := r.db.WithContext(ctx).First(&row, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert creates or replaces the tenant's profile.
func (r *Repository) Upsert(ctx context.Context, row *models.CompanyProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"company_name", "contact_email", "contact_phone", "erp_system", "updated_at",
			}),
		}).
		Create(row).
		Error
}
