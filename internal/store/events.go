package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/aviiiiral/eventcalendarr/internal/models"
	"github.com/aviiiiral/eventcalendarr/internal/repository"
)

// eventsKey is the fixed blob key the whole event list persists under.
const eventsKey = "events"

var ErrEmptyTitle = errors.New("event title is required")

// EventStore holds the canonical event list in memory and writes it
// through to the blob repository on every mutation. It is the single
// owner of the list; callers receive copies. Handlers run on separate
// request goroutines, so all access goes through the store's lock.
type EventStore struct {
	blobs repository.BlobRepository

	mu     sync.RWMutex
	events []models.Event
}

func NewEventStore(blobs repository.BlobRepository) *EventStore {
	return &EventStore{blobs: blobs}
}

// Load replaces the in-memory list with the persisted blob. A missing or
// corrupt blob yields an empty store, never an error to the caller.
func (store *EventStore) Load(ctx context.Context) error {
	data, found, err := store.blobs.Get(ctx, eventsKey)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if !found {
		store.events = nil
		return nil
	}

	var events []models.Event
	if err := json.Unmarshal(data, &events); err != nil {
		slog.Warn("discarding corrupt event blob", "error", err)
		store.events = nil
		return nil
	}
	store.events = events
	return nil
}

// Save persists the full event list as one JSON blob.
func (store *EventStore) Save(ctx context.Context) error {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.save(ctx)
}

// save writes the blob. The caller must hold the lock.
func (store *EventStore) save(ctx context.Context) error {
	data, err := json.Marshal(store.events)
	if err != nil {
		return fmt.Errorf("encoding events: %w", err)
	}
	if err := store.blobs.Set(ctx, eventsKey, data); err != nil {
		return fmt.Errorf("saving events: %w", err)
	}
	return nil
}

// Add appends the event, assigning a fresh ID when the caller supplied
// none, and persists. The recurrence rule is normalized so unused fields
// never go stale. A failed save leaves the store unchanged.
func (store *EventStore) Add(ctx context.Context, event models.Event) (models.Event, error) {
	if event.Title == "" {
		return models.Event{}, ErrEmptyTitle
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.Recurrence.Normalize()

	store.mu.Lock()
	defer store.mu.Unlock()

	store.events = append(store.events, event)
	if err := store.save(ctx); err != nil {
		store.events = store.events[:len(store.events)-1]
		return models.Event{}, err
	}
	return event, nil
}

// Update replaces the stored event with the same ID. An unknown ID is a
// silent no-op. A failed save leaves the store unchanged.
func (store *EventStore) Update(ctx context.Context, event models.Event) error {
	event.Recurrence.Normalize()

	store.mu.Lock()
	defer store.mu.Unlock()

	for i := range store.events {
		if store.events[i].ID == event.ID {
			previous := store.events[i]
			store.events[i] = event
			if err := store.save(ctx); err != nil {
				store.events[i] = previous
				return err
			}
			return nil
		}
	}
	return nil
}

// Delete removes the event with the given ID. A failed save leaves the
// store unchanged.
func (store *EventStore) Delete(ctx context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	kept := make([]models.Event, 0, len(store.events))
	for _, event := range store.events {
		if event.ID != id {
			kept = append(kept, event)
		}
	}
	if len(kept) == len(store.events) {
		return nil
	}

	previous := store.events
	store.events = kept
	if err := store.save(ctx); err != nil {
		store.events = previous
		return err
	}
	return nil
}

// List returns a copy of the event list in insertion order.
func (store *EventStore) List() []models.Event {
	store.mu.RLock()
	defer store.mu.RUnlock()

	events := make([]models.Event, len(store.events))
	copy(events, store.events)
	return events
}

// FindByID looks up an event by ID.
func (store *EventStore) FindByID(id string) (models.Event, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	for _, event := range store.events {
		if event.ID == id {
			return event, true
		}
	}
	return models.Event{}, false
}
