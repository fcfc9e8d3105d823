package handlers

import (
	"net/http"
)

type authenticateRequest struct {
	PIN string `json:"pin"`
}

// Authenticate handles POST /api/v1/auth
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(sessionIDHeader)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing "+sessionIDHeader+" header")
		return
	}

	var req authenticateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PIN == "" {
		writeError(w, http.StatusBadRequest, "pin is required")
		return
	}

	result := h.atm.Authenticate(r.Context(), sessionID, req.PIN)
	if !result.Success {
		writeJSON(w, statusForFailure(result.Message), result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
