package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/modgate/modgate/domain/credit"
	"github.com/modgate/modgate/ports"
)

// CreditStore implements ports.CreditStore using SQLite. Debit relies
// on a single conditional UPDATE so concurrent writers can never drive
// a balance negative.
type CreditStore struct {
	db *DB
}

// NewCreditStore creates a new SQLite credit store.
func NewCreditStore(db *DB) *CreditStore {
	return &CreditStore{db: db}
}

// Get retrieves the current balance snapshot for an account.
func (s *CreditStore) Get(ctx context.Context, accountID string) (credit.State, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT remaining, max_monthly FROM credit_accounts WHERE account_id = ?
	`, accountID)

	var state credit.State
	err := row.Scan(&state.Remaining, &state.MaxMonthly)
	if err == sql.ErrNoRows {
		return credit.State{}, fmt.Errorf("credit account %q not found", accountID)
	}
	if err != nil {
		return credit.State{}, fmt.Errorf("query credit account: %w", err)
	}
	return state, nil
}

// Debit atomically subtracts amount iff the result stays non-negative.
func (s *CreditStore) Debit(ctx context.Context, accountID string, amount int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE credit_accounts
		SET remaining = remaining - ?, updated_at = ?
		WHERE account_id = ? AND remaining >= ?
	`, amount, time.Now().UTC(), accountID, amount)
	if err != nil {
		return 0, fmt.Errorf("debit credits: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("debit credits: %w", err)
	}
	if affected == 1 {
		state, err := s.Get(ctx, accountID)
		if err != nil {
			return 0, err
		}
		return state.Remaining, nil
	}

	// Nothing updated: either the account is missing or the balance
	// fell short. Tell the two apart for the caller.
	state, err := s.Get(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("%w: need %d, have %d", credit.ErrInsufficientCredits, amount, state.Remaining)
}

// Put stores a balance snapshot.
func (s *CreditStore) Put(ctx context.Context, accountID string, state credit.State) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_accounts (account_id, remaining, max_monthly, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			remaining = excluded.remaining,
			max_monthly = excluded.max_monthly,
			updated_at = excluded.updated_at
	`, accountID, state.Remaining, state.MaxMonthly, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store credit account: %w", err)
	}
	return nil
}

// Ensure interface compliance.
var _ ports.CreditStore = (*CreditStore)(nil)
