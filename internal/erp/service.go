package erp

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

// productUpserter is the slice of the catalog repository the sync needs.
type productUpserter interface {
	UpsertByCode(ctx context.Context, product *models.Product) error
}

// logWriter records sync outcomes.
type logWriter interface {
	InsertLog(ctx context.Context, row *models.ERPSyncLog) error
}

// SyncInput is one import batch.
type SyncInput struct {
	SourceSystem string
	Rows         []Row
}

// SyncResultDTO reports the batch outcome. Per-row failures never fail the
// batch; they are collected and reported here.
type SyncResultDTO struct {
	SourceSystem string   `json:"source_system,omitempty"`
	RowsReceived int      `json:"rows_received"`
	RowsUpserted int      `json:"rows_upserted"`
	RowsFailed   int      `json:"rows_failed"`
	Errors       []string `json:"errors,omitempty"`
}

// Service imports ERP product batches into the tenant's catalog.
type Service struct {
	products productUpserter
	logs     logWriter
	logg     *logger.Logger
}

// NewService constructs an ERP sync service.
func NewService(products productUpserter, logs logWriter, logg *logger.Logger) (*Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product upserter required")
	}
	if logs == nil {
		return nil, fmt.Errorf("sync log writer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{products: products, logs: logs, logg: logg}, nil
}

// Sync normalizes and upserts every row. Row errors are aggregated with
// multierr and written to the sync log; only an empty batch is rejected.
func (s *Service) Sync(ctx context.Context, userID string, input SyncInput) (*SyncResultDTO, error) {
	if len(input.Rows) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rows are required")
	}

	result := &SyncResultDTO{
		SourceSystem: strings.TrimSpace(input.SourceSystem),
		RowsReceived: len(input.Rows),
	}

	var rowErrs error
	for i, raw := range input.Rows {
		normalized, err := NormalizeRow(raw)
		if err != nil {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		product := &models.Product{
			UserID:        userID,
			Code:          normalized.Code,
			Name:          normalized.Name,
			Description:   normalized.Description,
			Category:      normalized.Category,
			Brand:         normalized.Brand,
			Unit:          normalized.Unit,
			StockQuantity: normalized.StockQuantity,
			MinStock:      normalized.MinStock,
			Price:         normalized.Price,
			Cost:          normalized.Cost,
			Location:      normalized.Location,
			Supplier:      normalized.Supplier,
			Tags:          []string{},
			IsActive:      true,
		}
		if err := s.products.UpsertByCode(ctx, product); err != nil {
			rowErrs = multierr.Append(rowErrs, fmt.Errorf("row %d (%s): upsert: %w", i, normalized.Code, err))
			continue
		}
		result.RowsUpserted++
	}

	errs := multierr.Errors(rowErrs)
	result.RowsFailed = len(errs)
	for _, err := range errs {
		result.Errors = append(result.Errors, err.Error())
	}

	logRow := &models.ERPSyncLog{
		UserID:       userID,
		SourceSystem: result.SourceSystem,
		RowsReceived: result.RowsReceived,
		RowsUpserted: result.RowsUpserted,
		RowsFailed:   result.RowsFailed,
		ErrorText:    strings.Join(result.Errors, "; "),
	}
	if err := s.logs.InsertLog(ctx, logRow); err != nil {
		s.logg.Error(ctx, "sync log write failed", err)
	}

	return result, nil
}
