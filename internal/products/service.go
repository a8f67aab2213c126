package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db"
	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
	"github.com/eletrodesk/eletrodesk-backend/pkg/pagination"
)

// Service exposes catalog management operations.
type Service interface {
	CreateProduct(ctx context.Context, userID string, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, userID string, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, userID string, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, userID string, filters ListFilters, page pagination.Params) (*ListDTO, error)
	DeactivateProduct(ctx context.Context, userID string, productID uuid.UUID) error
	GetStats(ctx context.Context, userID string) (*StatsDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Code          string
	Name          string
	Description   string
	Category      string
	Brand         string
	Unit          string
	StockQuantity int
	MinStock      int
	Price         decimal.Decimal
	Cost          decimal.Decimal
	Location      string
	Supplier      string
	Tags          []string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Category      *string
	Brand         *string
	Unit          *string
	StockQuantity *int
	MinStock      *int
	Price         *decimal.Decimal
	Cost          *decimal.Decimal
	Location      *string
	Supplier      *string
	Tags          *[]string
	IsActive      *bool
}

// service implements the catalog service.
type service struct {
	repo *Repository
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

// CreateProduct validates and inserts a catalog row.
func (s *service) CreateProduct(ctx context.Context, userID string, input CreateProductInput) (*ProductDTO, error) {
	code := strings.TrimSpace(input.Code)
	name := strings.TrimSpace(input.Name)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code is required")
	}
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.StockQuantity < 0 || input.MinStock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantities cannot be negative")
	}
	if input.Price.IsNegative() || input.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price and cost cannot be negative")
	}

	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "un"
	}

	row := &models.Product{
		UserID:        userID,
		Code:          code,
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		Category:      strings.TrimSpace(input.Category),
		Brand:         strings.TrimSpace(input.Brand),
		Unit:          unit,
		StockQuantity: input.StockQuantity,
		MinStock:      input.MinStock,
		Price:         input.Price,
		Cost:          input.Cost,
		Location:      strings.TrimSpace(input.Location),
		Supplier:      strings.TrimSpace(input.Supplier),
		Tags:          append([]string{}, input.Tags...),
		IsActive:      true,
	}

	created, err := s.repo.CreateProduct(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_products_user_code") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product code %q already exists", code))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
	}
	return NewProductDTO(created), nil
}

// UpdateProduct applies the provided fields to an existing row.
func (s *service) UpdateProduct(ctx context.Context, userID string, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if err := applyUpdateToProduct(row, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProduct(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return NewProductDTO(updated), nil
}

// GetProduct loads one row.
func (s *service) GetProduct(ctx context.Context, userID string, productID uuid.UUID) (*ProductDTO, error) {
	row, err := s.repo.FindByID(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(row), nil
}

// ListProducts pages through the catalog.
func (s *service) ListProducts(ctx context.Context, userID string, filters ListFilters, page pagination.Params) (*ListDTO, error) {
	result, err := s.repo.List(ctx, userID, filters, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return NewListDTO(result), nil
}

// DeactivateProduct soft-deletes the row.
func (s *service) DeactivateProduct(ctx context.Context, userID string, productID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, userID, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Deactivate(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate product")
	}
	return nil
}

// GetStats aggregates the dashboard snapshot.
func (s *service) GetStats(ctx context.Context, userID string) (*StatsDTO, error) {
	stats, err := s.repo.FetchStats(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate product stats")
	}
	return NewStatsDTO(stats), nil
}

func applyUpdateToProduct(row *models.Product, input UpdateProductInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		row.Name = name
	}
	if input.Description != nil {
		row.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		row.Category = strings.TrimSpace(*input.Category)
	}
	if input.Brand != nil {
		row.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.Unit != nil {
		unit := strings.TrimSpace(*input.Unit)
		if unit == "" {
			unit = "un"
		}
		row.Unit = unit
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock_quantity cannot be negative")
		}
		row.StockQuantity = *input.StockQuantity
	}
	if input.MinStock != nil {
		if *input.MinStock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "min_stock cannot be negative")
		}
		row.MinStock = *input.MinStock
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		row.Price = *input.Price
	}
	if input.Cost != nil {
		if input.Cost.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
		}
		row.Cost = *input.Cost
	}
	if input.Location != nil {
		row.Location = strings.TrimSpace(*input.Location)
	}
	if input.Supplier != nil {
		row.Supplier = strings.TrimSpace(*input.Supplier)
	}
	if input.Tags != nil {
		row.Tags = append([]string{}, (*input.Tags)...)
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	return nil
}
