package testutil

import (
	"testing"

	"github.com/HerbHall/pitstop/internal/store"
)

// NewStore opens an in-memory SQLite store closed at test cleanup.
func NewStore(t testing.TB) *store.SQLiteStore {
	t.Helper()
	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
