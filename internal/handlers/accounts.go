package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/benx421/atm-core/internal/models"
)

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// GetBalance handles GET /api/v1/accounts/{accountID}/balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	sessionID, accountID, ok := h.sessionScope(w, r)
	if !ok {
		return
	}

	result := h.atm.GetBalance(r.Context(), accountID, sessionID)
	h.writeResult(w, result)
}

// Deposit handles POST /api/v1/accounts/{accountID}/deposits
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	sessionID, accountID, amount, ok := h.cashScope(w, r)
	if !ok {
		return
	}

	result := h.atm.Deposit(r.Context(), accountID, sessionID, amount)
	h.writeResult(w, result)
}

// Withdraw handles POST /api/v1/accounts/{accountID}/withdrawals
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	sessionID, accountID, amount, ok := h.cashScope(w, r)
	if !ok {
		return
	}

	result := h.atm.Withdraw(r.Context(), accountID, sessionID, amount)
	h.writeResult(w, result)
}

func (h *Handler) sessionScope(w http.ResponseWriter, r *http.Request) (sessionID, accountID string, ok bool) {
	sessionID = r.Header.Get(sessionIDHeader)
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing "+sessionIDHeader+" header")
		return "", "", false
	}

	accountID = chi.URLParam(r, "accountID")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID")
		return "", "", false
	}

	return sessionID, accountID, true
}

func (h *Handler) cashScope(w http.ResponseWriter, r *http.Request) (sessionID, accountID string, amount int64, ok bool) {
	sessionID, accountID, ok = h.sessionScope(w, r)
	if !ok {
		return "", "", 0, false
	}

	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return "", "", 0, false
	}

	return sessionID, accountID, req.Amount, true
}

func (h *Handler) writeResult(w http.ResponseWriter, result *models.BalanceResult) {
	if !result.Success {
		writeJSON(w, statusForFailure(result.Message), result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
