// Package databasetest opens throwaway in-memory databases for tests.
package databasetest

import (
	"testing"

	"github.com/Lixing-Zhang/coffee-shop/internal/config"
	"github.com/Lixing-Zhang/coffee-shop/internal/database"
	"github.com/Lixing-Zhang/coffee-shop/pkg/logger"
	"gorm.io/gorm"
)

// New returns a migrated, empty SQLite database that lives as long as t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file::memory:?_foreign_keys=on",
	}, logger.Discard())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
