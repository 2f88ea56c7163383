package highlight

import (
	"context"

	"github.com/trampo-app/trampo/internal/domain/plan"
)

// Service exposes highlight reads
type Service interface {
	ListForUser(ctx context.Context, userID string) ([]*Highlight, error)
	// CurrentPlan returns the plan boosting userID now, or nil
	CurrentPlan(ctx context.Context, userID string) (*plan.Plan, error)
}
