package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/benx421/atm-core/internal/service"
)

const sessionIDHeader = "X-Session-ID"

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// statusForFailure maps a failed operation result to an HTTP status. Ledger
// rejections (insufficient funds, unknown account) stay 200 so terminals can
// render the bank's message as a normal outcome.
func statusForFailure(message string) int {
	switch message {
	case service.MsgSessionInvalid, service.MsgInvalidAuth:
		return http.StatusUnauthorized
	case service.MsgNotEnoughCapacity, service.MsgNotEnoughCash:
		return http.StatusConflict
	case service.MsgInvalidAmount:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusOK
	}
}
