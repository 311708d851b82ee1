package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/modgate/modgate/domain/credit"
	"github.com/modgate/modgate/ports"
)

// CreditStore is an in-memory implementation of ports.CreditStore.
// The mutex makes Debit's check-then-decrement atomic per store.
type CreditStore struct {
	mu       sync.Mutex
	accounts map[string]credit.State
}

// NewCreditStore creates an empty in-memory credit store.
func NewCreditStore() *CreditStore {
	return &CreditStore{accounts: make(map[string]credit.State)}
}

// Get retrieves the current balance snapshot for an account.
func (s *CreditStore) Get(_ context.Context, accountID string) (credit.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.accounts[accountID]
	if !ok {
		return credit.State{}, fmt.Errorf("credit account %q not found", accountID)
	}
	return state, nil
}

// Debit atomically subtracts amount iff the result stays non-negative.
func (s *CreditStore) Debit(_ context.Context, accountID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.accounts[accountID]
	if !ok {
		return 0, fmt.Errorf("credit account %q not found", accountID)
	}
	if amount > state.Remaining {
		return 0, fmt.Errorf("%w: need %d, have %d", credit.ErrInsufficientCredits, amount, state.Remaining)
	}
	state.Remaining -= amount
	s.accounts[accountID] = state
	return state.Remaining, nil
}

// Put stores a balance snapshot.
func (s *CreditStore) Put(_ context.Context, accountID string, state credit.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[accountID] = state
	return nil
}

// Ensure interface compliance.
var _ ports.CreditStore = (*CreditStore)(nil)
