package config

import (
	"testing"

	"github.com/medirec/clinic-backend/model"
)

// In the test environment ConnectMySQL must hand back a usable in-memory
// SQLite database so the suite never needs a running MySQL server.
func TestLoadConfigAndConnectMySQLTestEnv(t *testing.T) {
	t.Setenv("APPENV", "test")

	cfg := LoadConfig()
	if cfg == nil {
		t.Fatalf("expected non-nil config")
	}

	db, err := ConnectMySQL()
	if err != nil {
		t.Fatalf("ConnectMySQL failed in test env: %v", err)
	}
	if db == nil {
		t.Fatalf("expected non-nil DB connection")
	}

	if err := db.AutoMigrate(&model.Stock{}); err != nil {
		t.Fatalf("migration on test DB failed: %v", err)
	}
}
