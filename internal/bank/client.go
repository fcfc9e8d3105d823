// Package bank defines the ledger client contract the ATM core depends on,
// together with its in-memory and networked implementations.
package bank

import (
	"context"

	"github.com/benx421/atm-core/internal/models"
)

// Client is the bank-of-record the ATM talks to. The ledger is authoritative
// over all money movement; the ATM never special-cases failure reasons, only
// the Success flag of the returned result.
//
// GetAuthKey returns an empty credential when the bank rejects the PIN. Every
// other call reports bank-side rejections (expired credential, unknown
// account, insufficient funds) as a failed result with a descriptive message.
// A non-nil error means the call itself could not complete. A timeout or
// transport failure must surface as a ledger failure, never as a silent
// success.
type Client interface {
	GetAuthKey(ctx context.Context, card models.CardData, pin string) (string, error)
	GetAccounts(ctx context.Context, authKey string) (models.AccountsResult, error)
	GetBalance(ctx context.Context, accountID, authKey string) (models.BalanceResult, error)
	Deposit(ctx context.Context, accountID, authKey string, amount int64) (models.BalanceResult, error)
	Withdraw(ctx context.Context, accountID, authKey string, amount int64) (models.BalanceResult, error)
}
