package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aviiiiral/eventcalendarr/internal/config"
	"github.com/aviiiiral/eventcalendarr/internal/database"
	"github.com/aviiiiral/eventcalendarr/internal/repository"
	"github.com/aviiiiral/eventcalendarr/internal/server"
	"github.com/aviiiiral/eventcalendarr/internal/store"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	eventStore := store.NewEventStore(repository.NewBlobRepository(db))
	if err := eventStore.Load(context.Background()); err != nil {
		slog.Error("loading events", "error", err)
		os.Exit(1)
	}

	srv := server.New(eventStore, cfg)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
