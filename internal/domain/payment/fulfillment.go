package payment

import (
	"context"
	"errors"
	"time"
)

// ErrRejected marks a purchase that can never be fulfilled, such as a boost
// for a vaga the buyer does not own. The event is acknowledged and dropped.
var ErrRejected = errors.New("purchase rejected")

// LedgerMutation describes the ledger write a fulfilled purchase produced
type LedgerMutation struct {
	Kind     PurchaseType `json:"kind"`
	UserID   string       `json:"userId"`
	RecordID string       `json:"recordId"`
	Label    string       `json:"label"`
	EndsAt   time.Time    `json:"endsAt"`
	// Superseded counts rows closed by the mutation
	Superseded int64 `json:"superseded,omitempty"`
}

// Fulfiller applies one purchase variant to its ledger
type Fulfiller interface {
	Fulfil(ctx context.Context, p Purchase, now time.Time) (*LedgerMutation, error)
}

// Webhook outcomes
const (
	OutcomeIgnored         = "ignored"
	OutcomeUnpaid          = "unpaid"
	OutcomeInvalidMetadata = "invalid_metadata"
	OutcomeDuplicate       = "duplicate"
	OutcomeRejected        = "rejected"
	OutcomeFulfilled       = "fulfilled"
)

// WebhookResult reports what a delivery did
type WebhookResult struct {
	Outcome  string
	Mutation *LedgerMutation
}
