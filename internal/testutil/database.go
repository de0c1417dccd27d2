package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/aviiiiral/eventcalendarr/internal/database"
	"github.com/aviiiiral/eventcalendarr/internal/repository"
	"github.com/aviiiiral/eventcalendarr/internal/store"
)

func NewTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// NewTestStore builds an empty event store backed by an in-memory
// database.
func NewTestStore(t *testing.T) *store.EventStore {
	t.Helper()

	db := NewTestDatabase(t)
	eventStore := store.NewEventStore(repository.NewBlobRepository(db))
	if err := eventStore.Load(context.Background()); err != nil {
		t.Fatalf("loading test store: %v", err)
	}
	return eventStore
}
