package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a tenant-scoped catalog row synced from the distributor's ERP.
type Product struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        string          `gorm:"column:user_id;not null;index"`
	Code          string          `gorm:"column:code;not null"`
	Name          string          `gorm:"column:name;not null"`
	Description   string          `gorm:"column:description;not null;default:''"`
	Category      string          `gorm:"column:category;not null;default:''"`
	Brand         string          `gorm:"column:brand;not null;default:''"`
	Unit          string          `gorm:"column:unit;not null;default:'un'"`
	StockQuantity int             `gorm:"column:stock_quantity;not null;default:0"`
	MinStock      int             `gorm:"column:min_stock;not null;default:0"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	Cost          decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null;default:0"`
	Location      string          `gorm:"column:location;not null;default:''"`
	Supplier      string          `gorm:"column:supplier;not null;default:''"`
	Tags          pq.StringArray  `gorm:"column:tags;type:text[];not null;default:'{}'"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// IsLowStock reports whether the row is at or below its minimum stock level.
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStock
}
