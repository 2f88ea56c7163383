package payment

import (
	"context"
	"time"
)

// EventStatus tracks a checkout session through fulfillment
type EventStatus string

const (
	EventProcessing EventStatus = "processing"
	EventFulfilled  EventStatus = "fulfilled"
	EventRejected   EventStatus = "rejected"
)

// Event records a checkout session the webhook has seen, keyed by session id
type Event struct {
	SessionID    string
	EventID      string
	PurchaseType PurchaseType
	UserID       string
	Status       EventStatus
	Detail       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EventRepository persists processed checkout sessions
type EventRepository interface {
	// Claim records e as processing. It returns false when the session is
	// already known, unless a previous claim is still processing and was
	// last touched before staleBefore.
	Claim(ctx context.Context, e *Event, staleBefore time.Time) (bool, error)
	MarkFulfilled(ctx context.Context, sessionID, detail string, now time.Time) error
	MarkRejected(ctx context.Context, sessionID, reason string, now time.Time) error
	// Release forgets a claim so a redelivery can retry it
	Release(ctx context.Context, sessionID string) error
	Get(ctx context.Context, sessionID string) (*Event, error)
	// PurgeBefore deletes settled events created before cutoff
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
