// Package service implements the ATM transaction core: session lifecycle,
// the PIN authentication handshake, and the money-movement operations that
// must stay consistent between the bank ledger and the machine's cash bin.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/benx421/atm-core/internal/bank"
	"github.com/benx421/atm-core/internal/cashbin"
	"github.com/benx421/atm-core/internal/chip"
	"github.com/benx421/atm-core/internal/models"
	"github.com/benx421/atm-core/internal/session"
)

// Messages returned by the orchestrator itself. Ledger outcomes pass through
// with the bank's own message.
const (
	MsgCardValid         = "card is valid"
	MsgSessionInvalid    = "session is invalid"
	MsgInvalidAuth       = "invalid pin and auth data"
	MsgNotEnoughCapacity = "not enough capacity in ATM"
	MsgNotEnoughCash     = "not enough cash in ATM"
	MsgInvalidAmount     = "invalid amount: must be greater than 0"
)

// ATMService orchestrates ATM transactions across the injected session
// store, bank ledger client, and cash bin. It holds no state of its own, so
// isolated instances can be constructed freely in tests.
type ATMService struct {
	sessions  session.Store
	bank      bank.Client
	cashBin   *cashbin.CashBin
	decryptor *chip.Decryptor
	logger    *slog.Logger

	now func() time.Time // replaceable in tests
}

// NewATMService creates an ATMService with injected collaborators.
func NewATMService(
	sessions session.Store,
	bankClient bank.Client,
	bin *cashbin.CashBin,
	decryptor *chip.Decryptor,
	logger *slog.Logger,
) *ATMService {
	return &ATMService{
		sessions:  sessions,
		bank:      bankClient,
		cashBin:   bin,
		decryptor: decryptor,
		logger:    logger,
		now:       time.Now,
	}
}

// ValidateCard handles the card-insertion step. It decodes the chip payload,
// applies the card checks in order, and on success opens a session for the
// interaction. A decode failure is fatal for the request and surfaces as an
// error; validation failures are reported in the result.
func (s *ATMService) ValidateCard(ctx context.Context, encryptedCardInfo string) (*models.ValidateCardResult, error) {
	card, err := s.decryptor.Decrypt(encryptedCardInfo)
	if err != nil {
		return nil, fmt.Errorf("decoding card data: %w", err)
	}

	if err := ValidateCard(card, s.now()); err != nil {
		return &models.ValidateCardResult{Message: err.Error()}, nil
	}

	sessionID, err := s.sessions.Create(ctx, card)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &models.ValidateCardResult{
		Success:   true,
		SessionID: sessionID,
		Message:   MsgCardValid,
	}, nil
}

// Authenticate runs the PIN handshake with the bank. On success the returned
// credential is attached to the session before the account listing is
// fetched; a listing failure leaves the session authenticated, since the two
// steps are separable. A rejected PIN leaves the session unauthenticated and
// reusable for a retry.
func (s *ATMService) Authenticate(ctx context.Context, sessionID, pin string) *models.AuthResult {
	sess, err := s.sessions.GetIfValid(ctx, sessionID)
	if err != nil {
		return &models.AuthResult{Message: MsgSessionInvalid}
	}

	authKey, err := s.bank.GetAuthKey(ctx, sess.Card, pin)
	if err != nil {
		s.logger.Warn("auth key request failed", "session_id", sessionID, "error", err)
		return &models.AuthResult{Message: MsgInvalidAuth}
	}
	if authKey == "" {
		return &models.AuthResult{Message: MsgInvalidAuth}
	}

	sess.AuthKey = authKey
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error("failed to persist session credential", "session_id", sessionID, "error", err)
		return &models.AuthResult{Message: MsgSessionInvalid}
	}

	res, err := s.bank.GetAccounts(ctx, authKey)
	if err != nil {
		return &models.AuthResult{Message: err.Error()}
	}

	return &models.AuthResult{
		Success:    res.Success,
		AccountIDs: res.AccountIDs,
		Message:    res.Message,
	}
}

// GetBalance reports the ledger balance of the account. It is read-only:
// session, ledger, and cash bin state are untouched.
func (s *ATMService) GetBalance(ctx context.Context, accountID, sessionID string) *models.BalanceResult {
	sess, err := s.sessions.GetIfValid(ctx, sessionID)
	if err != nil || !sess.Authenticated() {
		return &models.BalanceResult{AccountID: accountID, Message: MsgSessionInvalid}
	}

	res, err := s.bank.GetBalance(ctx, accountID, sess.AuthKey)
	if err != nil {
		return &models.BalanceResult{AccountID: accountID, Message: err.Error()}
	}

	return &res
}

// Deposit moves money into the account ledger. The bin capacity is reserved
// up front, inside the bin's own lock, so two concurrent deposits can never
// both be promised the same headroom; if the ledger then refuses or fails,
// the reservation is returned.
func (s *ATMService) Deposit(ctx context.Context, accountID, sessionID string, amount int64) *models.BalanceResult {
	sess, err := s.sessions.GetIfValid(ctx, sessionID)
	if err != nil || !sess.Authenticated() {
		return &models.BalanceResult{
			AccountID: accountID,
			Balance:   s.displayBalance(ctx, accountID, sess),
			Message:   MsgSessionInvalid,
		}
	}

	if err := ValidateAmount(amount); err != nil {
		return &models.BalanceResult{
			AccountID: accountID,
			Balance:   s.displayBalance(ctx, accountID, sess),
			Message:   err.Error(),
		}
	}

	if err := s.cashBin.Credit(amount); err != nil {
		return &models.BalanceResult{
			AccountID: accountID,
			Balance:   s.displayBalance(ctx, accountID, sess),
			Message:   MsgNotEnoughCapacity,
		}
	}

	res, err := s.bank.Deposit(ctx, accountID, sess.AuthKey, amount)
	if err != nil {
		s.releaseCredit(accountID, amount)
		return &models.BalanceResult{AccountID: accountID, Message: err.Error()}
	}
	if !res.Success {
		s.releaseCredit(accountID, amount)
	}

	return &res
}

// releaseCredit undoes a capacity reservation after the ledger refused the
// deposit. A concurrent withdrawal can have drained the reserved notes in
// the meantime; then the books disagree until an operator reconciles them.
func (s *ATMService) releaseCredit(accountID string, amount int64) {
	if err := s.cashBin.Debit(amount); err != nil {
		s.logger.Error("failed to release reserved bin capacity",
			"account_id", accountID,
			"amount", amount,
			"error", err,
		)
	}
}

// Withdraw is the mirror image of Deposit: the notes are reserved out of the
// bin before the ledger call, so two concurrent withdrawals cannot both be
// promised the same cash; if the ledger then refuses or fails, the notes go
// back.
func (s *ATMService) Withdraw(ctx context.Context, accountID, sessionID string, amount int64) *models.BalanceResult {
	sess, err := s.sessions.GetIfValid(ctx, sessionID)
	if err != nil || !sess.Authenticated() {
		return &models.BalanceResult{
			AccountID: accountID,
			Balance:   s.displayBalance(ctx, accountID, sess),
			Message:   MsgSessionInvalid,
		}
	}

	if err := ValidateAmount(amount); err != nil {
		return &models.BalanceResult{
			AccountID: accountID,
			Balance:   s.displayBalance(ctx, accountID, sess),
			Message:   err.Error(),
		}
	}

	if err := s.cashBin.Debit(amount); err != nil {
		return &models.BalanceResult{
			AccountID: accountID,
			Balance:   s.displayBalance(ctx, accountID, sess),
			Message:   MsgNotEnoughCash,
		}
	}

	res, err := s.bank.Withdraw(ctx, accountID, sess.AuthKey, amount)
	if err != nil {
		s.releaseDebit(accountID, amount)
		return &models.BalanceResult{AccountID: accountID, Message: err.Error()}
	}
	if !res.Success {
		s.releaseDebit(accountID, amount)
	}

	return &res
}

// releaseDebit returns reserved notes to the bin after the ledger refused
// the withdrawal. A concurrent deposit can have filled the freed headroom in
// the meantime; then the books disagree until an operator reconciles them.
func (s *ATMService) releaseDebit(accountID string, amount int64) {
	if err := s.cashBin.Credit(amount); err != nil {
		s.logger.Error("failed to return reserved cash to the bin",
			"account_id", accountID,
			"amount", amount,
			"error", err,
		)
	}
}

// displayBalance fetches the balance for display on a failed precondition.
// Best effort: it needs a credential and swallows lookup failures.
func (s *ATMService) displayBalance(ctx context.Context, accountID string, sess *models.Session) int64 {
	if sess == nil || !sess.Authenticated() {
		return 0
	}

	res, err := s.bank.GetBalance(ctx, accountID, sess.AuthKey)
	if err != nil || !res.Success {
		return 0
	}

	return res.Balance
}
