package handlers

import (
	"errors"
	"net/http"

	"github.com/benx421/atm-core/internal/chip"
)

type validateCardRequest struct {
	EncryptedCardInfo string `json:"encrypted_card_info"`
}

// ValidateCard handles POST /api/v1/cards
func (h *Handler) ValidateCard(w http.ResponseWriter, r *http.Request) {
	var req validateCardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EncryptedCardInfo == "" {
		writeError(w, http.StatusBadRequest, "encrypted_card_info is required")
		return
	}

	result, err := h.atm.ValidateCard(r.Context(), req.EncryptedCardInfo)
	if err != nil {
		if errors.Is(err, chip.ErrBadPayload) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("card validation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !result.Success {
		writeJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
