package bank

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"
	"time"

	"github.com/benx421/atm-core/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const defaultAuthKeyTTL = 3 * time.Minute

// ErrBankUnavailable is returned when the fake injects a remote failure.
var ErrBankUnavailable = errors.New("bank temporarily unavailable")

// FakeConfig tunes the fake bank's behavior. Latency and failure injection
// make it behave like a remote service for resilience testing; both default
// to off.
type FakeConfig struct {
	AuthKeyTTL  time.Duration
	MinLatency  time.Duration
	MaxLatency  time.Duration
	FailureRate float64
}

// Fake is an in-memory bank of record.
//
// Card credentials are stored as bcrypt hashes over the PIN, verification
// code, and expiration date; a matching triple yields a fresh auth key with
// its own short lifetime. Accounts are seeded by tests and the demo entry
// point.
type Fake struct {
	mu       sync.Mutex
	cfg      FakeConfig
	cards    map[string][]byte        // card number -> credential hash
	authKeys map[string]authKeyRecord // auth key -> issuance record
	accounts map[string]*fakeAccount  // account id -> account

	now func() time.Time // replaceable in tests
}

type authKeyRecord struct {
	cardNumber string
	expiresAt  time.Time
}

type fakeAccount struct {
	id         string
	cardNumber string
	balance    int64
}

var _ Client = (*Fake)(nil)

// NewFake creates a Fake with the given configuration.
func NewFake(cfg FakeConfig) *Fake {
	if cfg.AuthKeyTTL <= 0 {
		cfg.AuthKeyTTL = defaultAuthKeyTTL
	}

	return &Fake{
		cfg:      cfg,
		cards:    make(map[string][]byte),
		authKeys: make(map[string]authKeyRecord),
		accounts: make(map[string]*fakeAccount),
		now:      time.Now,
	}
}

// RegisterCard stores the credential record the bank will verify PINs
// against for the given card.
func (f *Fake) RegisterCard(card models.CardData, pin string) error {
	hash, err := bcrypt.GenerateFromPassword(credentialMaterial(card, pin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash card credential: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards[card.Number] = hash

	return nil
}

// SeedAccount creates an account owned by the given card number.
func (f *Fake) SeedAccount(accountID, cardNumber string, balance int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.accounts[accountID] = &fakeAccount{
		id:         accountID,
		cardNumber: cardNumber,
		balance:    balance,
	}
}

// GetAuthKey verifies the PIN against the card's credential record and
// issues a short-lived auth key. A mismatch yields an empty key, not an
// error.
func (f *Fake) GetAuthKey(ctx context.Context, card models.CardData, pin string) (string, error) {
	if err := f.simulateRemote(ctx); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	hash, ok := f.cards[card.Number]
	if !ok {
		return "", nil
	}
	if bcrypt.CompareHashAndPassword(hash, credentialMaterial(card, pin)) != nil {
		return "", nil
	}

	key := uuid.NewString()
	f.authKeys[key] = authKeyRecord{
		cardNumber: card.Number,
		expiresAt:  f.now().Add(f.cfg.AuthKeyTTL),
	}

	return key, nil
}

// GetAccounts lists the account IDs owned by the auth key's card.
func (f *Fake) GetAccounts(ctx context.Context, authKey string) (models.AccountsResult, error) {
	if err := f.simulateRemote(ctx); err != nil {
		return models.AccountsResult{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.validAuthKey(authKey)
	if !ok {
		return models.AccountsResult{Message: "auth key is expired"}, nil
	}

	var ids []string
	for id, acc := range f.accounts {
		if acc.cardNumber == rec.cardNumber {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return models.AccountsResult{
		Success:    true,
		AccountIDs: ids,
		Message:    "retrieved account ids",
	}, nil
}

// GetBalance reports the current balance of the account.
func (f *Fake) GetBalance(ctx context.Context, accountID, authKey string) (models.BalanceResult, error) {
	if err := f.simulateRemote(ctx); err != nil {
		return models.BalanceResult{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	acc, res := f.accountFor(accountID, authKey)
	if acc == nil {
		return res, nil
	}

	return models.BalanceResult{
		Success:   true,
		AccountID: accountID,
		Balance:   acc.balance,
		Message:   "balance retrieved",
	}, nil
}

// Deposit credits the account ledger.
func (f *Fake) Deposit(ctx context.Context, accountID, authKey string, amount int64) (models.BalanceResult, error) {
	if err := f.simulateRemote(ctx); err != nil {
		return models.BalanceResult{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	acc, res := f.accountFor(accountID, authKey)
	if acc == nil {
		return res, nil
	}
	if amount <= 0 {
		return models.BalanceResult{AccountID: accountID, Balance: acc.balance, Message: "invalid amount"}, nil
	}

	acc.balance += amount

	return models.BalanceResult{
		Success:   true,
		AccountID: accountID,
		Balance:   acc.balance,
		Message:   "deposit successful",
	}, nil
}

// Withdraw debits the account ledger.
func (f *Fake) Withdraw(ctx context.Context, accountID, authKey string, amount int64) (models.BalanceResult, error) {
	if err := f.simulateRemote(ctx); err != nil {
		return models.BalanceResult{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	acc, res := f.accountFor(accountID, authKey)
	if acc == nil {
		return res, nil
	}
	if amount <= 0 {
		return models.BalanceResult{AccountID: accountID, Balance: acc.balance, Message: "invalid amount"}, nil
	}
	if acc.balance < amount {
		return models.BalanceResult{AccountID: accountID, Balance: acc.balance, Message: "insufficient funds"}, nil
	}

	acc.balance -= amount

	return models.BalanceResult{
		Success:   true,
		AccountID: accountID,
		Balance:   acc.balance,
		Message:   "withdrawal successful",
	}, nil
}

// validAuthKey resolves an auth key, dropping it when expired. Caller holds
// the lock.
func (f *Fake) validAuthKey(authKey string) (authKeyRecord, bool) {
	rec, ok := f.authKeys[authKey]
	if !ok {
		return authKeyRecord{}, false
	}
	if !f.now().Before(rec.expiresAt) {
		delete(f.authKeys, authKey)
		return authKeyRecord{}, false
	}
	return rec, true
}

// accountFor resolves the account if the auth key is live and owns it.
// Caller holds the lock. On failure the account is nil and the result
// carries the rejection message.
func (f *Fake) accountFor(accountID, authKey string) (*fakeAccount, models.BalanceResult) {
	rec, ok := f.validAuthKey(authKey)
	if !ok {
		return nil, models.BalanceResult{AccountID: accountID, Message: "auth key is expired"}
	}

	acc, ok := f.accounts[accountID]
	if !ok || acc.cardNumber != rec.cardNumber {
		return nil, models.BalanceResult{AccountID: accountID, Message: "account not found"}
	}

	return acc, models.BalanceResult{}
}

// simulateRemote injects the configured latency and failure rate so the fake
// behaves like a networked ledger.
func (f *Fake) simulateRemote(ctx context.Context) error {
	if err := f.injectLatency(ctx); err != nil {
		return err
	}
	if shouldInjectFailure(f.cfg.FailureRate) {
		return ErrBankUnavailable
	}
	return ctx.Err()
}

func (f *Fake) injectLatency(ctx context.Context) error {
	minMS := f.cfg.MinLatency.Milliseconds()
	maxMS := f.cfg.MaxLatency.Milliseconds()
	if minMS <= 0 && maxMS <= 0 {
		return nil
	}

	sleepMS := minMS
	if rangeMS := maxMS - minMS; rangeMS > 0 {
		if offset, err := rand.Int(rand.Reader, big.NewInt(rangeMS)); err == nil {
			sleepMS += offset.Int64()
		}
	}

	timer := time.NewTimer(time.Duration(sleepMS) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func shouldInjectFailure(failureRate float64) bool {
	if failureRate <= 0 {
		return false
	}
	if failureRate >= 1 {
		return true
	}

	const precision = 1000000
	randomNum, err := rand.Int(rand.Reader, big.NewInt(precision))
	if err != nil {
		return false
	}

	threshold := int64(failureRate * precision)
	return randomNum.Int64() < threshold
}

func credentialMaterial(card models.CardData, pin string) []byte {
	return []byte(pin + "#" + card.VerificationCode + "#" + card.ExpirationDate)
}
