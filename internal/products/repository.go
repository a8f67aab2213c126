package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	"github.com/eletrodesk/eletrodesk-backend/pkg/pagination"
)

// Repository wires together product persistence helpers. Every query is
// scoped to the owning tenant's user_id.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts a new product row.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads one product owned by the user.
func (r *Repository) FindByID(ctx context.Context, userID string, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByCode loads one product by its tenant-unique code.
func (r *Repository) FindByCode(ctx context.Context, userID, code string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "user_id = ? AND code = ?", userID, code).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListActive returns the user's active products ordered by creation, capped at
// limit. The chat pipeline reads its working set through this query.
func (r *Repository) ListActive(ctx context.Context, userID string, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// ListLowStock returns active products at or below their minimum stock.
func (r *Repository) ListLowStock(ctx context.Context, userID string, limit int) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND stock_quantity <= min_stock", userID, true).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// ListFilters describe the supported filter knobs for the catalog listing.
type ListFilters struct {
	Query    string
	Category string
	Brand    string
	LowStock bool
}

// ListResult is one page of products plus the cursor for the next page.
type ListResult struct {
	Products   []models.Product
	NextCursor string
}

// List pages through the user's catalog with keyset pagination.
func (r *Repository) List(ctx context.Context, userID string, filters ListFilters, page pagination.Params) (*ListResult, error) {
	pageSize := pagination.NormalizeLimit(page.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(page.Limit)

	cursor, err := pagination.ParseCursor(page.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.db.WithContext(ctx).
		Where("user_id = ?", userID)

	if q := strings.TrimSpace(filters.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		qb = qb.Where(
			"lower(name) LIKE ? OR lower(description) LIKE ? OR lower(code) LIKE ?",
			like, like, like,
		)
	}
	if filters.Category != "" {
		qb = qb.Where("category = ?", filters.Category)
	}
	if filters.Brand != "" {
		qb = qb.Where("brand = ?", filters.Brand)
	}
	if filters.LowStock {
		qb = qb.Where("stock_quantity <= min_stock")
	}
	if cursor != nil {
		qb = qb.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Product
	if err := qb.Order("created_at DESC, id DESC").Limit(limitWithBuffer).Find(&rows).Error; err != nil {
		return nil, err
	}

	result := &ListResult{Products: rows}
	if len(rows) > pageSize {
		result.Products = rows[:pageSize]
		last := result.Products[pageSize-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

// Deactivate soft-deletes the product.
func (r *Repository) Deactivate(ctx context.Context, userID string, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", false).
		Error
}

// UpsertByCode inserts the row or refreshes it when (user_id, code) already
// exists. ERP sync batches funnel through here.
func (r *Repository) UpsertByCode(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "description", "category", "brand", "unit",
				"stock_quantity", "min_stock", "price", "cost",
				"location", "supplier", "tags", "is_active", "updated_at",
			}),
		}).
		Create(product).
		Error
}

// Stats aggregates the per-tenant snapshot shown on the dashboard. Computed on
// demand, never cached.
type Stats struct {
	TotalProducts int64
	LowStockCount int64
	Categories    []string
	Brands        []string
}

// FetchStats aggregates counts and distinct category/brand values.
func (r *Repository) FetchStats(ctx context.Context, userID string) (*Stats, error) {
	stats := &Stats{}
	base := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("user_id = ? AND is_active = ?", userID, true)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("stock_quantity <= min_stock").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &stats.Categories).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Distinct("brand").
		Where("brand <> ''").
		Order("brand ASC").
		Pluck("brand", &stats.Brands).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
