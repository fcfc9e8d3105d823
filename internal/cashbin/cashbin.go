// Package cashbin tracks the machine's physical currency stock and capacity.
package cashbin

import (
	"errors"
	"fmt"
	"sync"
)

// Errors returned when a mutation would break the stock invariant
var (
	// ErrCapacityExceeded indicates a credit would push the stock above capacity
	ErrCapacityExceeded = errors.New("cash bin capacity exceeded")

	// ErrInsufficientCash indicates a debit would push the stock below zero
	ErrInsufficientCash = errors.New("insufficient cash in bin")
)

// CashBin is the machine's record of physical currency stock.
//
// It holds the invariant 0 <= total <= capacity at all times: the check and
// the mutation happen inside one locked region, so two concurrent withdrawals
// cannot both pass a stock check against a stale total. All policy decisions
// (can this transaction afford the movement?) live in the orchestrator; the
// bin is pure bookkeeping.
type CashBin struct {
	mu       sync.Mutex
	total    int64
	capacity int64
}

// New creates a CashBin with the given initial stock and capacity.
func New(initial, capacity int64) (*CashBin, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("capacity cannot be negative: %d", capacity)
	}
	if initial < 0 || initial > capacity {
		return nil, fmt.Errorf("initial stock %d out of range [0, %d]", initial, capacity)
	}

	return &CashBin{
		total:    initial,
		capacity: capacity,
	}, nil
}

// Total returns the current stock.
func (b *CashBin) Total() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// FreeCapacity returns how much more cash the bin can accept.
func (b *CashBin) FreeCapacity() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.capacity - b.total
}

// Credit increases the stock by amount. It re-verifies the capacity invariant
// under the lock and refuses the mutation rather than break it.
func (b *CashBin) Credit(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("credit amount cannot be negative: %d", amount)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.total+amount > b.capacity {
		return ErrCapacityExceeded
	}
	b.total += amount

	return nil
}

// Debit decreases the stock by amount. It re-verifies the stock invariant
// under the lock and refuses the mutation rather than break it.
func (b *CashBin) Debit(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("debit amount cannot be negative: %d", amount)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.total-amount < 0 {
		return ErrInsufficientCash
	}
	b.total -= amount

	return nil
}
