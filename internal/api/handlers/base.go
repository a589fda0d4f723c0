// Package handlers implements the control API endpoints.
package handlers

import (
	"log/slog"
	"time"

	"dnsveil/internal/config"
	"dnsveil/internal/database"
)

// Handler holds the dependencies the endpoints share. The database is
// optional; profile and journal endpoints answer 503 without it.
type Handler struct {
	cfg       *config.Config
	logger    *slog.Logger
	db        *database.DB
	startTime time.Time
}

// New creates a Handler. db may be nil when persistence is disabled.
func New(cfg *config.Config, logger *slog.Logger, db *database.DB) *Handler {
	if cfg == nil {
		panic("handlers.New: cfg is nil")
	}
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		startTime: time.Now(),
	}
}
