package erp

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

type fakeUpserter struct {
	upsertFn func(ctx context.Context, product *models.Product) error
}

func (f *fakeUpserter) UpsertByCode(ctx context.Context, product *models.Product) error {
	return f.upsertFn(ctx, product)
}

type fakeLogWriter struct {
	inserted *models.ERPSyncLog
	err      error
}

func (f *fakeLogWriter) InsertLog(ctx context.Context, row *models.ERPSyncLog) error {
	f.inserted = row
	return f.err
}

func newTestSyncService(t *testing.T, upserter *fakeUpserter, logs *fakeLogWriter) *Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(upserter, logs, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSyncAggregatesRowFailuresWithoutFailingBatch(t *testing.T) {
	var upserted []string
	upserter := &fakeUpserter{upsertFn: func(ctx context.Context, product *models.Product) error {
		if product.Code == "BAD-1" {
			return errors.New("constraint violation")
		}
		upserted = append(upserted, product.Code)
		return nil
	}}
	logs := &fakeLogWriter{}
	svc := newTestSyncService(t, upserter, logs)

	result, err := svc.Sync(context.Background(), "user-1", SyncInput{
		SourceSystem: "TOTVS",
		Rows: []Row{
			{"Codigo": "OK-1", "Nome": "Produto 1"},
			{"Codigo": "BAD-1", "Nome": "Produto 2"},
			{"Descricao": "sem código"},
			{"Codigo": "OK-2", "Nome": "Produto 3", "Qtd": float64(5)},
		},
	})
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	if result.RowsReceived != 4 || result.RowsUpserted != 2 || result.RowsFailed != 2 {
		t.Fatalf("unexpected counts %+v", result)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 aggregated errors, got %v", result.Errors)
	}
	if len(upserted) != 2 || upserted[0] != "OK-1" || upserted[1] != "OK-2" {
		t.Fatalf("unexpected upserted codes %v", upserted)
	}

	if logs.inserted == nil {
		t.Fatal("expected sync log row")
	}
	if logs.inserted.RowsFailed != 2 || logs.inserted.SourceSystem != "TOTVS" {
		t.Fatalf("unexpected sync log %+v", logs.inserted)
	}
	if !strings.Contains(logs.inserted.ErrorText, "upsert") {
		t.Fatalf("expected upsert failure in log text, got %q", logs.inserted.ErrorText)
	}
}

func TestSyncRejectsEmptyBatch(t *testing.T) {
	svc := newTestSyncService(t, &fakeUpserter{}, &fakeLogWriter{})
	if _, err := svc.Sync(context.Background(), "user-1", SyncInput{}); err == nil {
		t.Fatal("expected validation error for empty batch")
	}
}

func TestSyncToleratesLogWriteFailure(t *testing.T) {
	upserter := &fakeUpserter{upsertFn: func(ctx context.Context, product *models.Product) error { return nil }}
	logs := &fakeLogWriter{err: errors.New("log table missing")}
	svc := newTestSyncService(t, upserter, logs)

	result, err := svc.Sync(context.Background(), "user-1", SyncInput{
		Rows: []Row{{"Codigo": "OK-1", "Nome": "Produto 1"}},
	})
	if err != nil {
		t.Fatalf("sync should tolerate log failure, got %v", err)
	}
	if result.RowsUpserted != 1 {
		t.Fatalf("expected 1 upsert, got %d", result.RowsUpserted)
	}
}
