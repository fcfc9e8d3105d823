package handlers

import (
	"context"
	"net/http"
	"time"
)

type healthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.healthChecker != nil {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.healthChecker.PingContext(pingCtx); err != nil {
			h.logger.Error("health check failed: session store unreachable", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy"})
			return
		}
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}
