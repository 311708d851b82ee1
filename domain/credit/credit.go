// Package credit provides the credit ledger: pure cost computation and
// charge gating over a balance snapshot. The ledger performs no I/O;
// committing a new balance atomically is the store's job.
package credit

import (
	"errors"
	"fmt"
	"time"

	"github.com/modgate/modgate/domain/moderation"
)

// ErrInsufficientCredits is returned when a charge would exceed the
// remaining balance. The balance is left untouched; the caller may deny
// the action or retry with a cheaper model.
var ErrInsufficientCredits = errors.New("insufficient credits")

// State is a snapshot of an account's credit balance (value type).
// Invariant: Remaining never goes negative.
type State struct {
	Remaining  int64
	MaxMonthly int64
}

// Cost returns the credit cost of classifying byteLen bytes with model.
// The model must be concrete.
func Cost(model moderation.Model, byteLen int) int64 {
	return int64(byteLen) * model.CreditsPerByte()
}

// Charge gates a moderation call against a balance snapshot and returns
// the new remaining balance. A call that would exceed the balance is
// refused outright, never charged and clamped. Model resolution and
// charging for one decision must both use the same snapshot.
func Charge(s State, model moderation.Model, byteLen int) (int64, error) {
	cost := Cost(model, byteLen)
	if cost > s.Remaining {
		return 0, fmt.Errorf("%w: need %d, have %d", ErrInsufficientCredits, cost, s.Remaining)
	}
	return s.Remaining - cost, nil
}

// PeriodBounds returns the start and end of the billing period containing t.
func PeriodBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return
}

// BalanceView is the account-facing balance summary.
type BalanceView struct {
	UsedCurrentPeriod int64
	MaxMonthlyCredits int64
	RemainingCredits  int64
	UsagePercentage   float64
	ResetDate         time.Time
}

// Balance derives the account-facing view from a snapshot. Top-ups can
// push the balance above the monthly cap; used never reads negative.
func Balance(s State, now time.Time) BalanceView {
	used := s.MaxMonthly - s.Remaining
	if used < 0 {
		used = 0
	}
	var pct float64
	if s.MaxMonthly > 0 {
		pct = float64(used) / float64(s.MaxMonthly) * 100
	}
	_, end := PeriodBounds(now)
	return BalanceView{
		UsedCurrentPeriod: used,
		MaxMonthlyCredits: s.MaxMonthly,
		RemainingCredits:  s.Remaining,
		UsagePercentage:   pct,
		ResetDate:         end,
	}
}
