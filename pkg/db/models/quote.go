package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eletrodesk/eletrodesk-backend/pkg/enums"
)

// Quote is a customer quotation built from catalog line items.
type Quote struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       string            `gorm:"column:user_id;not null;index"`
	Number       string            `gorm:"column:number;not null"`
	CustomerName string            `gorm:"column:customer_name;not null"`
	Status       enums.QuoteStatus `gorm:"column:status;not null;default:'draft'"`
	Total        decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null;default:0"`
	Items        []QuoteItem       `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// QuoteItem is a single quoted line.
type QuoteItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID     uuid.UUID       `gorm:"column:quote_id;type:uuid;not null;index"`
	ProductCode string          `gorm:"column:product_code;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	Quantity    int             `gorm:"column:quantity;not null;default:1"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// LineTotal multiplies quantity by unit price with exact decimal arithmetic.
func (i QuoteItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
