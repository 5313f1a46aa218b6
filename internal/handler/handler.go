// internal/handler/handler.go

// Package handler owns the HTTP plumbing shared by every controller: the chi
// router, request middleware, the error-kind to status table and JSON responses.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/customer-service/internal/logger"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RouteRegistrar mounts a controller's routes on the router.
type RouteRegistrar interface {
	Routes(r chi.Router)
}

type Handler struct {
	db     Pinger
	logger *logger.Logger
}

func newHandler(db Pinger, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{
		db:     db,
		logger: log,
	}
}
