package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	"github.com/eletrodesk/eletrodesk-backend/pkg/enums"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
)

// Service exposes quote generation and retrieval.
type Service interface {
	CreateQuote(ctx context.Context, userID string, input CreateQuoteInput) (*QuoteDTO, error)
	GetQuote(ctx context.Context, userID string, id uuid.UUID) (*QuoteDTO, error)
	ListQuotes(ctx context.Context, userID string, limit int) ([]QuoteDTO, error)
}

// CreateQuoteInput holds the validated payload to create a quote.
type CreateQuoteInput struct {
	CustomerName string
	Items        []QuoteItemInput
}

// QuoteItemInput is one requested line.
type QuoteItemInput struct {
	ProductCode string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
}

type service struct {
	repo *Repository
	now  func() time.Time
}

// NewService constructs a quote service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// CreateQuote validates the lines, computes exact decimal totals and persists
// the quote as a draft.
func (s *service) CreateQuote(ctx context.Context, userID string, input CreateQuoteInput) (*QuoteDTO, error) {
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_name is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	quoteID := uuid.New()
	total := decimal.Zero
	items := make([]models.QuoteItem, 0, len(input.Items))
	for i, item := range input.Items {
		code := strings.TrimSpace(item.ProductCode)
		if code == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: product_code is required", i))
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity must be positive", i))
		}
		if item.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: unit_price cannot be negative", i))
		}
		row := models.QuoteItem{
			ID:          uuid.New(),
			QuoteID:     quoteID,
			ProductCode: code,
			Description: strings.TrimSpace(item.Description),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
		total = total.Add(row.LineTotal())
		items = append(items, row)
	}

	row := &models.Quote{
		ID:           quoteID,
		UserID:       userID,
		Number:       fmt.Sprintf("ORC-%d", s.now().UnixMilli()),
		CustomerName: customer,
		Status:       enums.QuoteStatusDraft,
		Total:        total,
		Items:        items,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert quote")
	}
	return NewQuoteDTO(row), nil
}

// GetQuote loads one quote.
func (s *service) GetQuote(ctx context.Context, userID string, id uuid.UUID) (*QuoteDTO, error) {
	row, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}
	return NewQuoteDTO(row), nil
}

// ListQuotes returns the user's quotes, newest first.
func (s *service) ListQuotes(ctx context.Context, userID string, limit int) ([]QuoteDTO, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list quotes")
	}
	out := make([]QuoteDTO, len(rows))
	for i := range rows {
		out[i] = *NewQuoteDTO(&rows[i])
	}
	return out, nil
}
