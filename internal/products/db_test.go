package product

import (
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/env"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if !env.IsSet("ELETRODESK_DB_DSN") {
		t.Skip("ELETRODESK_DB_DSN is not set")
	}

	conn, err := gorm.Open(postgres.Open(env.Get("ELETRODESK_DB_DSN", "")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return conn
}
