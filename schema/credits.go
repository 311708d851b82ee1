package schema

import (
	"time"

	"github.com/modgate/modgate/domain/credit"
)

// CreditBalance is the account-facing balance summary on the wire.
type CreditBalance struct {
	UsedCurrentPeriod int64      `json:"used_current_period"`
	MaxMonthlyCredits int64      `json:"max_monthly_credits"`
	RemainingCredits  int64      `json:"remaining_credits"`
	UsagePercentage   float64    `json:"usage_percentage"`
	ResetDate         *time.Time `json:"reset_date,omitempty"`
}

// FromView converts a derived balance view to the wire form.
func FromView(v credit.BalanceView) CreditBalance {
	out := CreditBalance{
		UsedCurrentPeriod: v.UsedCurrentPeriod,
		MaxMonthlyCredits: v.MaxMonthlyCredits,
		RemainingCredits:  v.RemainingCredits,
		UsagePercentage:   v.UsagePercentage,
	}
	if !v.ResetDate.IsZero() {
		reset := v.ResetDate
		out.ResetDate = &reset
	}
	return out
}

// CreditTransaction is one entry of the account's credit ledger.
type CreditTransaction struct {
	ID              string    `json:"id"`
	Amount          int64     `json:"amount"`
	TransactionType string    `json:"transaction_type"`
	ModelType       string    `json:"model_type,omitempty"`
	BytesProcessed  *int64    `json:"bytes_processed,omitempty"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

// SubscriptionInfo summarizes the account's subscription.
type SubscriptionInfo struct {
	Tier              string     `json:"tier"`
	Cycle             string     `json:"cycle"`
	Price             float64    `json:"price"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
	MaxMonthlyCredits int64      `json:"max_monthly_credits"`
	IsActive          bool       `json:"is_active"`
}

// CreditProductResponse is a purchasable credit pack.
type CreditProductResponse struct {
	ID            string `json:"id"`
	PriceID       string `json:"price_id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	PriceCents    int64  `json:"price_cents"`
	Currency      string `json:"currency"`
	CreditsAmount int64  `json:"credits_amount"`
}

// BuyCreditsRequest starts a credit-pack purchase.
type BuyCreditsRequest struct {
	PriceID string `json:"price_id"`
}

// BuyCreditsResponse hands back the payment processor's checkout URL.
type BuyCreditsResponse struct {
	CheckoutURL string `json:"checkout_url"`
}
