package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aviiiiral/eventcalendarr/internal/config"
	"github.com/aviiiiral/eventcalendarr/internal/handlers"
	"github.com/aviiiiral/eventcalendarr/internal/services"
	"github.com/aviiiiral/eventcalendarr/internal/store"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(eventStore *store.EventStore, cfg config.Config) *Server {
	resolver := services.NewResolver(eventStore)

	eventHandler := handlers.NewEventHandler(eventStore)
	calendarHandler := handlers.NewCalendarHandler(eventStore)
	instanceHandler := handlers.NewInstanceHandler(resolver)
	icalHandler := handlers.NewICalHandler(eventStore, cfg.CalendarName)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Get("/ical", icalHandler.Feed)

	router.Route("/events", func(r chi.Router) {
		r.Get("/", eventHandler.List)
		r.Post("/", eventHandler.Create)
		r.Get("/{id}", eventHandler.Get)
		r.Put("/{id}", eventHandler.Update)
		r.Delete("/{id}", eventHandler.Delete)
	})

	router.Get("/calendar/month", calendarHandler.Month)
	router.Get("/calendar/day", calendarHandler.Day)

	router.Route("/instances", func(r chi.Router) {
		r.Post("/resolve", instanceHandler.ResolveEdit)
		r.Post("/delete", instanceHandler.ResolveDelete)
		r.Post("/move", instanceHandler.Move)
	})

	return &Server{router: router, config: cfg}
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}

// Router exposes the assembled handler, used by tests.
func (server *Server) Router() http.Handler {
	return server.router
}
