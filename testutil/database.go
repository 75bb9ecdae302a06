package testutil

import (
	"testing"

	"freshkeep/config"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens an in-memory SQLite database with the full schema.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	// :memory: is per connection; keep the pool on a single one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting underlying database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}
