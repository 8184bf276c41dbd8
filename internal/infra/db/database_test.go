package db

import (
	"testing"
	"time"

	"github.com/realtytrack/backend/config"
	"github.com/realtytrack/backend/internal/integration/persistence/model"
)

func TestNewConnection_SQLite(t *testing.T) {
	database, err := NewConnection(config.StorageSQLite, &config.DatabaseConfig{
		Path:            ":memory:",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if !database.HealthCheck() {
		t.Error("HealthCheck() = false")
	}
	if database.Dialect() != config.StorageSQLite {
		t.Errorf("Dialect() = %q", database.Dialect())
	}
	if err := database.AutoMigrate(&model.KVEntryModel{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	if !database.DB().Migrator().HasTable("kv_entries") {
		t.Error("kv_entries table missing after migration")
	}
}

func TestNewConnection_UnsupportedBackend(t *testing.T) {
	if _, err := NewConnection("mongo", &config.DatabaseConfig{}); err == nil {
		t.Error("expected error for unsupported backend")
	}
}
