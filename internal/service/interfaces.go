package service

import (
	"context"

	"github.com/benx421/atm-core/internal/models"
)

// Transactor is the capability surface the transport layer consumes.
type Transactor interface {
	ValidateCard(ctx context.Context, encryptedCardInfo string) (*models.ValidateCardResult, error)
	Authenticate(ctx context.Context, sessionID, pin string) *models.AuthResult
	GetBalance(ctx context.Context, accountID, sessionID string) *models.BalanceResult
	Deposit(ctx context.Context, accountID, sessionID string, amount int64) *models.BalanceResult
	Withdraw(ctx context.Context, accountID, sessionID string, amount int64) *models.BalanceResult
}

// Ensure concrete types implement interfaces
var _ Transactor = (*ATMService)(nil)
