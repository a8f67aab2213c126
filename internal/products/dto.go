package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
)

// ProductDTO is the catalog payload returned to clients.
type ProductDTO struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	Unit          string          `json:"unit"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	Price         decimal.Decimal `json:"price"`
	Cost          decimal.Decimal `json:"cost"`
	Location      string          `json:"location,omitempty"`
	Supplier      string          `json:"supplier,omitempty"`
	Tags          []string        `json:"tags"`
	IsActive      bool            `json:"is_active"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// StatsDTO is the dashboard snapshot payload.
type StatsDTO struct {
	TotalProducts int64    `json:"total_products"`
	LowStockCount int64    `json:"low_stock_count"`
	Categories    []string `json:"categories"`
	Brands        []string `json:"brands"`
}

// ListDTO is one catalog page.
type ListDTO struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	return &ProductDTO{
		ID:            product.ID,
		Code:          product.Code,
		Name:          product.Name,
		Description:   product.Description,
		Category:      product.Category,
		Brand:         product.Brand,
		Unit:          product.Unit,
		StockQuantity: product.StockQuantity,
		MinStock:      product.MinStock,
		Price:         product.Price,
		Cost:          product.Cost,
		Location:      product.Location,
		Supplier:      product.Supplier,
		Tags:          append([]string{}, product.Tags...),
		IsActive:      product.IsActive,
		LowStock:      product.IsLowStock(),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

// NewListDTO converts a repository page into the response payload.
func NewListDTO(result *ListResult) *ListDTO {
	out := &ListDTO{
		Products:   make([]ProductDTO, len(result.Products)),
		NextCursor: result.NextCursor,
	}
	for i := range result.Products {
		out.Products[i] = *NewProductDTO(&result.Products[i])
	}
	return out
}

// NewStatsDTO converts the aggregate snapshot into the response payload.
func NewStatsDTO(stats *Stats) *StatsDTO {
	return &StatsDTO{
		TotalProducts: stats.TotalProducts,
		LowStockCount: stats.LowStockCount,
		Categories:    append([]string{}, stats.Categories...),
		Brands:        append([]string{}, stats.Brands...),
	}
}
