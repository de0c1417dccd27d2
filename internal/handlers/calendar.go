package handlers

import (
	"net/http"
	"time"

	"github.com/aviiiiral/eventcalendarr/internal/models"
	"github.com/aviiiiral/eventcalendarr/internal/services"
	"github.com/aviiiiral/eventcalendarr/internal/store"
)

type CalendarHandler struct {
	store *store.EventStore
}

func NewCalendarHandler(eventStore *store.EventStore) *CalendarHandler {
	return &CalendarHandler{store: eventStore}
}

// Month expands the event list over the anchor month and returns the
// instances together with the grid of visible days.
func (handler *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	anchor := time.Now()
	if anchorStr := r.URL.Query().Get("anchor"); anchorStr != "" {
		parsed, err := time.ParseInLocation("2006-01", anchorStr, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "anchor must be YYYY-MM"})
			return
		}
		anchor = parsed
	}

	instances := services.ExpandMonth(handler.store.List(), anchor)

	days := services.CalendarDays(anchor)
	dayKeys := make([]string, len(days))
	for i, day := range days {
		dayKeys[i] = day.Format(models.DateLayout)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"days":      dayKeys,
		"instances": instances,
	})
}

// Day returns the instances whose start falls on the requested date.
func (handler *CalendarHandler) Day(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	day, err := time.ParseInLocation(models.DateLayout, dateStr, time.Local)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	instances := services.ExpandMonth(handler.store.List(), day)
	writeJSON(w, http.StatusOK, services.EventsForDay(instances, day))
}
