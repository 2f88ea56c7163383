package highlight

import (
	"context"
	"time"

	"github.com/trampo-app/trampo/internal/domain/plan"
)

// Repository defines highlight ledger persistence
type Repository interface {
	// Supersede atomically closes every ACTIVE highlight of h.UserID and
	// inserts h. Elapsed rows keep their EndsAt; unexpired rows are cut to now.
	Supersede(ctx context.Context, h *Highlight, now time.Time) error

	// ListByUser returns the user's history, most recent first, with plans
	ListByUser(ctx context.Context, userID string) ([]*Highlight, error)

	// CurrentPlans maps each user id holding a valid highlight at now to the
	// highest-priority plan among its valid highlights.
	CurrentPlans(ctx context.Context, userIDs []string, now time.Time) (map[string]*plan.Plan, error)
}
