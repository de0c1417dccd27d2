package handlers

import (
	"net/http"

	"github.com/aviiiiral/eventcalendarr/internal/services"
	"github.com/aviiiiral/eventcalendarr/internal/store"
)

type ICalHandler struct {
	store        *store.EventStore
	calendarName string
}

func NewICalHandler(eventStore *store.EventStore, calendarName string) *ICalHandler {
	return &ICalHandler{store: eventStore, calendarName: calendarName}
}

func (handler *ICalHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed := services.ExportICal(handler.store.List(), handler.calendarName)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=calendar.ics")
	w.Write([]byte(feed))
}
