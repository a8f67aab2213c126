package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
)

// QuoteDTO is the quote payload returned to clients.
type QuoteDTO struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	Items        []QuoteItemDTO  `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
}

// QuoteItemDTO is one quoted line.
type QuoteItemDTO struct {
	ProductCode string          `json:"product_code"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// NewQuoteDTO builds a DTO from the persisted model.
func NewQuoteDTO(row *models.Quote) *QuoteDTO {
	dto := &QuoteDTO{
		ID:           row.ID,
		Number:       row.Number,
		CustomerName: row.CustomerName,
		Status:       row.Status.String(),
		Total:        row.Total,
		Items:        make([]QuoteItemDTO, len(row.Items)),
		CreatedAt:    row.CreatedAt,
	}
	for i, item := range row.Items {
		dto.Items[i] = QuoteItemDTO{
			ProductCode: item.ProductCode,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal(),
		}
	}
	return dto
}
