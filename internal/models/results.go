package models

// ValidateCardResult reports the outcome of the card validation step. On
// success SessionID identifies the newly created session.
type ValidateCardResult struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// AuthResult reports the outcome of the PIN authentication handshake. On
// success AccountIDs lists the accounts reachable with the new credential.
type AuthResult struct {
	Success    bool     `json:"success"`
	AccountIDs []string `json:"account_ids,omitempty"`
	Message    string   `json:"message"`
}

// AccountsResult is the bank's answer to an account listing request.
type AccountsResult struct {
	Success    bool     `json:"success"`
	AccountIDs []string `json:"account_ids,omitempty"`
	Message    string   `json:"message"`
}

// BalanceResult reports the outcome of a balance, deposit, or withdrawal
// operation. Balance holds the account balance in minor currency units as of
// the bank's reply; on failures it is a best-effort display value.
type BalanceResult struct {
	Success   bool   `json:"success"`
	AccountID string `json:"account_id"`
	Balance   int64  `json:"balance"`
	Message   string `json:"message"`
}
