// Package redisstore provides Redis-backed implementations of storage
// ports, for deployments where decision nodes share state. Balances are
// stored as hashes:
//
//	Key:    credits:<account_id>
//	Fields: remaining, max_monthly
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/modgate/modgate/domain/credit"
	"github.com/modgate/modgate/ports"
)

// KeyPrefix is the Redis key prefix for credit balances.
const KeyPrefix = "credits:"

// debitScript performs the conditional decrement server-side so that
// concurrent decision nodes can never drive a balance negative. It
// returns the new balance, -1 on shortfall, or -2 for a missing account.
var debitScript = redis.NewScript(`
	local remaining = redis.call('HGET', KEYS[1], 'remaining')
	if not remaining then
		return -2
	end
	remaining = tonumber(remaining)
	local amount = tonumber(ARGV[1])
	if amount > remaining then
		return -1
	end
	return redis.call('HINCRBY', KEYS[1], 'remaining', -amount)
`)

// CreditStore implements ports.CreditStore on a shared Redis instance.
type CreditStore struct {
	client *redis.Client
}

// NewCreditStore creates a credit store using the provided Redis client.
func NewCreditStore(client *redis.Client) *CreditStore {
	return &CreditStore{client: client}
}

// Get retrieves the current balance snapshot for an account.
func (s *CreditStore) Get(ctx context.Context, accountID string) (credit.State, error) {
	vals, err := s.client.HGetAll(ctx, KeyPrefix+accountID).Result()
	if err != nil {
		return credit.State{}, fmt.Errorf("get credit account: %w", err)
	}
	if len(vals) == 0 {
		return credit.State{}, fmt.Errorf("credit account %q not found", accountID)
	}

	var state credit.State
	if _, err := fmt.Sscan(vals["remaining"], &state.Remaining); err != nil {
		return credit.State{}, fmt.Errorf("decode remaining for %s: %w", accountID, err)
	}
	if _, err := fmt.Sscan(vals["max_monthly"], &state.MaxMonthly); err != nil {
		return credit.State{}, fmt.Errorf("decode max_monthly for %s: %w", accountID, err)
	}
	return state, nil
}

// Debit atomically subtracts amount iff the result stays non-negative.
func (s *CreditStore) Debit(ctx context.Context, accountID string, amount int64) (int64, error) {
	res, err := debitScript.Run(ctx, s.client, []string{KeyPrefix + accountID}, amount).Int64()
	if err != nil {
		return 0, fmt.Errorf("debit credits: %w", err)
	}
	switch res {
	case -2:
		return 0, fmt.Errorf("credit account %q not found", accountID)
	case -1:
		state, err := s.Get(ctx, accountID)
		if err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: need %d, have %d", credit.ErrInsufficientCredits, amount, state.Remaining)
	default:
		return res, nil
	}
}

// Put stores a balance snapshot.
func (s *CreditStore) Put(ctx context.Context, accountID string, state credit.State) error {
	err := s.client.HSet(ctx, KeyPrefix+accountID,
		"remaining", state.Remaining,
		"max_monthly", state.MaxMonthly,
	).Err()
	if err != nil {
		return fmt.Errorf("store credit account: %w", err)
	}
	return nil
}

// Ensure interface compliance.
var _ ports.CreditStore = (*CreditStore)(nil)
