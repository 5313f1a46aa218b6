// internal/handler/routes.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	appErrors "github.com/unclebandit/customer-service/internal/errors"
	"github.com/unclebandit/customer-service/internal/logger"
)

// NewRouter builds the root router. db backs /health and may be nil.
func NewRouter(log *logger.Logger, db Pinger, controllers ...RouteRegistrar) *chi.Mux {
	h := newHandler(db, log)

	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	router.Get("/health", h.health)

	for _, c := range controllers {
		c.Routes(router)
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, appErrors.NewNotFound("no route for %s %s", r.Method, r.URL.Path))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, r, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed")
	})

	return router
}
