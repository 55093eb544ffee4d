// Package testdb opens throwaway databases for tests.
package testdb

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/qbank/database"
	"gorm.io/gorm"
)

// New returns a migrated in-memory sqlite database scoped to t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), true)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("access test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
