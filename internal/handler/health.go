package handler

import (
	"context"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			h.logger.Warn().Err(err).Msg("health check: database unreachable")
			WriteJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}

	WriteJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
