package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aviiiiral/eventcalendarr/internal/models"
	"github.com/aviiiiral/eventcalendarr/internal/services"
	"github.com/aviiiiral/eventcalendarr/internal/store"
)

type EventHandler struct {
	store *store.EventStore
}

func NewEventHandler(eventStore *store.EventStore) *EventHandler {
	return &EventHandler{store: eventStore}
}

func (handler *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events := handler.store.List()

	term := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	if term != "" || category != "" {
		events = services.Search(events, term, category)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events":     events,
		"categories": services.Categories(handler.store.List()),
	})
}

func (handler *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, found := handler.store.FindByID(chi.URLParam(r, "id"))
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (handler *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid event body"})
		return
	}

	if !proceedDespiteConflict(r) {
		if services.DetectConflict(handler.store.List(), event) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "schedule conflict with another event",
			})
			return
		}
	}

	created, err := handler.store.Add(ctx, event)
	if err != nil {
		if errors.Is(err, store.ErrEmptyTitle) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		slog.Error("creating event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create event"})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (handler *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "id")

	if _, found := handler.store.FindByID(eventID); !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid event body"})
		return
	}
	event.ID = eventID

	if !proceedDespiteConflict(r) {
		if services.DetectConflict(handler.store.List(), event) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "schedule conflict with another event",
			})
			return
		}
	}

	if err := handler.store.Update(ctx, event); err != nil {
		slog.Error("updating event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update event"})
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (handler *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := handler.store.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		slog.Error("deleting event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete event"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func proceedDespiteConflict(r *http.Request) bool {
	return r.URL.Query().Get("proceed") == "true"
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
