package profile

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.CompanyProfile{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestUpdateProfileValidation(t *testing.T) {
	svc, err := NewService(NewRepository(newTestDB(t)))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{CompanyName: "  "}); err == nil {
		t.Fatal("expected validation error for blank company name")
	}
}

func TestProfileUpsertAndGet(t *testing.T) {
	svc, err := NewService(NewRepository(newTestDB(t)))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.GetProfile(ctx, "user-1"); err == nil {
		t.Fatal("expected not found before first update")
	} else if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}

	created, err := svc.UpdateProfile(ctx, "user-1", UpdateProfileInput{
		CompanyName:  "  Eletrica Central LTDA ",
		ContactEmail: "vendas@eletricacentral.com.br",
		ERPSystem:    "TOTVS",
	})
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	if created.CompanyName != "Eletrica Central LTDA" {
		t.Fatalf("expected trimmed company name, got %q", created.CompanyName)
	}

	updated, err := svc.UpdateProfile(ctx, "user-1", UpdateProfileInput{
		CompanyName: "Eletrica Central",
		ERPSystem:   "Bling",
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if updated.ERPSystem != "Bling" {
		t.Fatalf("expected replaced erp system, got %q", updated.ERPSystem)
	}

	got, err := svc.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.CompanyName != "Eletrica Central" {
		t.Fatalf("expected latest company name, got %q", got.CompanyName)
	}
}
