// Package mocks provides testify mocks for the bank package interfaces.
package mocks

import (
	"context"

	"github.com/benx421/atm-core/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockClient is a mock implementation of bank.Client.
type MockClient struct {
	mock.Mock
}

// NewMockClient creates a MockClient that verifies its expectations when the
// test finishes.
func NewMockClient(t mockConstructorTestingT) *MockClient {
	m := &MockClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockClient) GetAuthKey(ctx context.Context, card models.CardData, pin string) (string, error) {
	args := m.Called(ctx, card, pin)
	return args.String(0), args.Error(1)
}

func (m *MockClient) GetAccounts(ctx context.Context, authKey string) (models.AccountsResult, error) {
	args := m.Called(ctx, authKey)
	return args.Get(0).(models.AccountsResult), args.Error(1)
}

func (m *MockClient) GetBalance(ctx context.Context, accountID, authKey string) (models.BalanceResult, error) {
	args := m.Called(ctx, accountID, authKey)
	return args.Get(0).(models.BalanceResult), args.Error(1)
}

func (m *MockClient) Deposit(ctx context.Context, accountID, authKey string, amount int64) (models.BalanceResult, error) {
	args := m.Called(ctx, accountID, authKey, amount)
	return args.Get(0).(models.BalanceResult), args.Error(1)
}

func (m *MockClient) Withdraw(ctx context.Context, accountID, authKey string, amount int64) (models.BalanceResult, error) {
	args := m.Called(ctx, accountID, authKey, amount)
	return args.Get(0).(models.BalanceResult), args.Error(1)
}
