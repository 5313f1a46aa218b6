// internal/handler/response.go
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	appErrors "github.com/unclebandit/customer-service/internal/errors"
	"github.com/unclebandit/customer-service/internal/logger"
)

const internalErrorMessage = "an unexpected error occurred"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to encode response")
	}
}

// WriteError renders err through the status table. Messages of unclassified
// errors never reach the client.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFromError(err)
	log := logger.FromRequest(r)

	msg, ok := appErrors.Message(err)
	if !ok || status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		msg = internalErrorMessage
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeErrorBody(w, r, status, msg)
}

func writeErrorBody(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, r, status, ErrorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
		Path:      r.URL.Path,
	})
}
