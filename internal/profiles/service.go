package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
)

// Service exposes company profile reads and writes.
type Service interface {
	GetProfile(ctx context.Context, userID string) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*ProfileDTO, error)
}

// UpdateProfileInput holds the full replacement payload for a profile.
type UpdateProfileInput struct {
	CompanyName  string
	ContactEmail string
	ContactPhone string
	ERPSystem    string
}

// ProfileDTO is the profile payload returned to clients.
type ProfileDTO struct {
	CompanyName  string    `json:"company_name"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	ERPSystem    string    `json:"erp_system,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type service struct {
	repo *Repository
}

// NewService constructs a profile service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	return &service{repo: repo}, nil
}

// GetProfile loads the tenant's profile.
func (s *service) GetProfile(ctx context.Context, userID string) (*ProfileDTO, error) {
	row, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return newProfileDTO(row), nil
}

// UpdateProfile replaces the tenant's profile fields.
func (s *service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*ProfileDTO, error) {
	name := strings.TrimSpace(input.CompanyName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name is required")
	}

	row := &models.CompanyProfile{
		UserID:       userID,
		CompanyName:  name,
		ContactEmail: strings.TrimSpace(input.ContactEmail),
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		ERPSystem:    strings.TrimSpace(input.ERPSystem),
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert profile")
	}
	return newProfileDTO(row), nil
}

func newProfileDTO(row *models.CompanyProfile) *ProfileDTO {
	return &ProfileDTO{
		CompanyName:  row.CompanyName,
		ContactEmail: row.ContactEmail,
		ContactPhone: row.ContactPhone,
		ERPSystem:    row.ERPSystem,
		UpdatedAt:    row.UpdatedAt,
	}
}
