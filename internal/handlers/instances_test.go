package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/aviiiiral/eventcalendarr/internal/models"
	"github.com/aviiiiral/eventcalendarr/internal/services"
	"github.com/aviiiiral/eventcalendarr/internal/store"
	"github.com/aviiiiral/eventcalendarr/internal/testutil"
)

func newInstanceRouter(t *testing.T) (*chi.Mux, *store.EventStore) {
	t.Helper()

	eventStore := testutil.NewTestStore(t)
	handler := NewInstanceHandler(services.NewResolver(eventStore))

	router := chi.NewRouter()
	router.Post("/instances/resolve", handler.ResolveEdit)
	router.Post("/instances/delete", handler.ResolveDelete)
	router.Post("/instances/move", handler.Move)
	return router, eventStore
}

func templateInstance(t *testing.T, eventStore *store.EventStore, day int) (models.Event, models.Instance) {
	t.Helper()

	template, err := eventStore.Add(context.Background(), models.Event{
		Title:      "Standup",
		Date:       models.NewLocalTime(time.Date(2024, 1, 1, 9, 0, 0, 0, time.Local)),
		Recurrence: &models.Recurrence{Type: models.RecurrenceDaily},
	})
	if err != nil {
		t.Fatalf("seeding template: %v", err)
	}

	windowStart := time.Date(2024, 1, day, 0, 0, 0, 0, time.Local)
	windowEnd := time.Date(2024, 1, day, 23, 59, 59, 0, time.Local)
	instances := services.Expand(template, windowStart, windowEnd)
	if len(instances) != 1 {
		t.Fatalf("expected 1 occurrence, got %d", len(instances))
	}
	return template, instances[0]
}

func postJSON(t *testing.T, router *chi.Mux, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encoding request: %v", err)
	}
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestInstanceHandler_ResolveEditSeries(t *testing.T) {
	router, eventStore := newInstanceRouter(t)
	template, instance := templateInstance(t, eventStore, 10)

	edited := instance.Event
	edited.Title = "Renamed Standup"

	recorder := postJSON(t, router, "/instances/resolve", map[string]interface{}{
		"instance": instance,
		"event":    edited,
		"scope":    "series",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	stored, _ := eventStore.FindByID(template.ID)
	if stored.Title != "Renamed Standup" {
		t.Errorf("expected template renamed, got %q", stored.Title)
	}
}

func TestInstanceHandler_ResolveEditMissingTemplate(t *testing.T) {
	router, eventStore := newInstanceRouter(t)
	_, instance := templateInstance(t, eventStore, 10)
	instance.OriginalEventID = "ghost"

	recorder := postJSON(t, router, "/instances/resolve", map[string]interface{}{
		"instance": instance,
		"event":    instance.Event,
		"scope":    "series",
	})

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", recorder.Code)
	}
}

func TestInstanceHandler_ResolveDeleteSeries(t *testing.T) {
	router, eventStore := newInstanceRouter(t)
	_, instance := templateInstance(t, eventStore, 10)

	recorder := postJSON(t, router, "/instances/delete", map[string]interface{}{
		"instance": instance,
		"scope":    "series",
	})

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", recorder.Code)
	}
	if len(eventStore.List()) != 0 {
		t.Error("expected the template deleted")
	}
}

func TestInstanceHandler_ResolveDeleteInstance(t *testing.T) {
	router, eventStore := newInstanceRouter(t)
	template, instance := templateInstance(t, eventStore, 10)

	recorder := postJSON(t, router, "/instances/delete", map[string]interface{}{
		"instance": instance,
		"scope":    "instance",
	})

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", recorder.Code)
	}

	stored, _ := eventStore.FindByID(template.ID)
	if !stored.SkipsDate(time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)) {
		t.Error("expected the occurrence excluded from the template")
	}
}

func TestInstanceHandler_MoveConflictReturns409(t *testing.T) {
	router, eventStore := newInstanceRouter(t)
	_, instance := templateInstance(t, eventStore, 10)

	// A daily series occupies the target day already, so the move is
	// advisory-blocked without proceed.
	recorder := postJSON(t, router, "/instances/move", map[string]interface{}{
		"instance":  instance,
		"targetDay": "2024-01-20",
		"scope":     "instance",
	})

	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", recorder.Code, recorder.Body.String())
	}

	recorder = postJSON(t, router, "/instances/move", map[string]interface{}{
		"instance":  instance,
		"targetDay": "2024-01-20",
		"scope":     "instance",
		"proceed":   true,
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200 with proceed, got %d", recorder.Code)
	}

	var moved models.Event
	if err := json.NewDecoder(recorder.Body).Decode(&moved); err != nil {
		t.Fatalf("decoding moved event: %v", err)
	}
	if moved.Date.Format(models.DateLayout) != "2024-01-20" {
		t.Errorf("expected moved date 2024-01-20, got %s", moved.Date)
	}
	if moved.Date.Hour() != 9 {
		t.Errorf("expected time of day preserved, got hour %d", moved.Date.Hour())
	}
}
