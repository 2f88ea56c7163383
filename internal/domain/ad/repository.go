package ad

import (
	"context"
	"time"
)

// Repository defines ad ledger persistence
type Repository interface {
	// ExpireElapsed marks the owner's ACTIVE ads whose window has passed as
	// EXPIRED and returns how many rows changed.
	ExpireElapsed(ctx context.Context, userID string, now time.Time) (int64, error)
	Create(ctx context.Context, a *Ad) error
	// ListCurrent returns ads valid at now for the audience; ALL ads are
	// always included. Newest first.
	ListCurrent(ctx context.Context, audience Target, now time.Time, limit int) ([]*Ad, error)
	ListByOwner(ctx context.Context, userID string) ([]*Ad, error)
}
