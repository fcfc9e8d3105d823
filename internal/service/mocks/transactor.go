// Package mocks provides testify mocks for the service interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/benx421/atm-core/internal/models"
)

// MockTransactor is a mock implementation of service.Transactor
type MockTransactor struct {
	mock.Mock
}

// NewMockTransactor creates a new MockTransactor and registers cleanup
// assertions with the test.
func NewMockTransactor(t *testing.T) *MockTransactor {
	m := &MockTransactor{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactor) ValidateCard(ctx context.Context, encryptedCardInfo string) (*models.ValidateCardResult, error) {
	args := m.Called(ctx, encryptedCardInfo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ValidateCardResult), args.Error(1)
}

func (m *MockTransactor) Authenticate(ctx context.Context, sessionID, pin string) *models.AuthResult {
	args := m.Called(ctx, sessionID, pin)
	return args.Get(0).(*models.AuthResult)
}

func (m *MockTransactor) GetBalance(ctx context.Context, accountID, sessionID string) *models.BalanceResult {
	args := m.Called(ctx, accountID, sessionID)
	return args.Get(0).(*models.BalanceResult)
}

func (m *MockTransactor) Deposit(ctx context.Context, accountID, sessionID string, amount int64) *models.BalanceResult {
	args := m.Called(ctx, accountID, sessionID, amount)
	return args.Get(0).(*models.BalanceResult)
}

func (m *MockTransactor) Withdraw(ctx context.Context, accountID, sessionID string, amount int64) *models.BalanceResult {
	args := m.Called(ctx, accountID, sessionID, amount)
	return args.Get(0).(*models.BalanceResult)
}
