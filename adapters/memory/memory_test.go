package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/modgate/modgate/domain/credit"
	"github.com/modgate/modgate/domain/guild"
	"github.com/modgate/modgate/domain/moderation"
)

// -----------------------------------------------------------------------------
// GuildConfigStore tests
// -----------------------------------------------------------------------------

func TestGuildConfigStore_DefaultForUnknownGuild(t *testing.T) {
	s := NewGuildConfigStore()

	cfg, err := s.Get(context.Background(), "guild-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !cfg.IsActive || !cfg.ModerateAllChannels {
		t.Errorf("expected default config for unknown guild, got %+v", cfg)
	}
}

func TestGuildConfigStore_PutGet(t *testing.T) {
	s := NewGuildConfigStore()
	ctx := context.Background()

	cfg := guild.DefaultConfig()
	cfg.Model = moderation.ModelArbiter
	cfg.AlertsChannel = "alerts"
	if err := s.Put(ctx, "guild-1", cfg); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := s.Get(ctx, "guild-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Model != moderation.ModelArbiter || got.AlertsChannel != "alerts" {
		t.Errorf("stored config lost fields: %+v", got)
	}
}

// -----------------------------------------------------------------------------
// CreditStore tests
// -----------------------------------------------------------------------------

func TestCreditStore_GetUnknownAccount(t *testing.T) {
	s := NewCreditStore()
	if _, err := s.Get(context.Background(), "acct-1"); err == nil {
		t.Errorf("expected error for unknown account")
	}
}

func TestCreditStore_DebitExactBalance(t *testing.T) {
	s := NewCreditStore()
	ctx := context.Background()
	s.Put(ctx, "acct-1", credit.State{Remaining: 300, MaxMonthly: 1000})

	got, err := s.Debit(ctx, "acct-1", 300)
	if err != nil {
		t.Fatalf("Debit returned error: %v", err)
	}
	if got != 0 {
		t.Errorf("balance = %d, want 0", got)
	}
}

func TestCreditStore_DebitInsufficient(t *testing.T) {
	s := NewCreditStore()
	ctx := context.Background()
	s.Put(ctx, "acct-1", credit.State{Remaining: 300, MaxMonthly: 1000})

	_, err := s.Debit(ctx, "acct-1", 301)
	if !errors.Is(err, credit.ErrInsufficientCredits) {
		t.Fatalf("Debit error = %v, want ErrInsufficientCredits", err)
	}

	state, err := s.Get(ctx, "acct-1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if state.Remaining != 300 {
		t.Errorf("failed debit must not change the balance, got %d", state.Remaining)
	}
}

func TestCreditStore_ConcurrentDebitsNeverOverspend(t *testing.T) {
	s := NewCreditStore()
	ctx := context.Background()
	s.Put(ctx, "acct-1", credit.State{Remaining: 100, MaxMonthly: 100})

	const workers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Debit(ctx, "acct-1", 10); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Errorf("expected exactly 10 successful debits, got %d", succeeded)
	}
	state, _ := s.Get(ctx, "acct-1")
	if state.Remaining != 0 {
		t.Errorf("final balance = %d, want 0", state.Remaining)
	}
	if state.Remaining < 0 {
		t.Errorf("balance went negative: %d", state.Remaining)
	}
}
