package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/eletrodesk/eletrodesk-backend/internal/erp"
	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

type stubUpserter struct {
	rows []*models.Product
}

func (s *stubUpserter) UpsertByCode(_ context.Context, product *models.Product) error {
	s.rows = append(s.rows, product)
	return nil
}

type stubLogWriter struct{}

func (stubLogWriter) InsertLog(context.Context, *models.ERPSyncLog) error { return nil }

func TestERPSync(t *testing.T) {
	upserter := &stubUpserter{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := erp.NewService(upserter, stubLogWriter{}, logg)
	if err != nil {
		t.Fatalf("erp service: %v", err)
	}

	body := strings.NewReader(`{
		"source_system": "TOTVS",
		"rows": [
			{"codigo": "DJ-25", "descricao": "Disjuntor 25A", "estoque": 10, "preco": "45,90"},
			{"descricao": "sem codigo"}
		]
	}`)
	req := authedRequest(http.MethodPost, "/api/v1/erp/sync", body)
	resp := httptest.NewRecorder()
	ERPSync(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data erp.SyncResultDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RowsUpserted != 1 || envelope.Data.RowsFailed != 1 {
		t.Fatalf("unexpected result %+v", envelope.Data)
	}
	if len(upserter.rows) != 1 || upserter.rows[0].Code != "DJ-25" {
		t.Fatalf("unexpected upserts %+v", upserter.rows)
	}
}

func TestERPSyncRequiresAuth(t *testing.T) {
	upserter := &stubUpserter{}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := erp.NewService(upserter, stubLogWriter{}, logg)
	if err != nil {
		t.Fatalf("erp service: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/erp/sync", strings.NewReader(`{"rows":[]}`))
	resp := httptest.NewRecorder()
	ERPSync(svc, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
