package highlight

import (
	"time"

	"github.com/trampo-app/trampo/internal/domain/plan"
)

// Status of a ledger row. Rows are expired lazily, so ACTIVE only means
// "not expired as of the last write"; validity checks also compare EndsAt.
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusExpired Status = "EXPIRED"
)

// Highlight is a paid boost of a user's search ranking
type Highlight struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	PlanID    string     `json:"planId"`
	Plan      *plan.Plan `json:"plan,omitempty"`
	StartsAt  time.Time  `json:"startsAt"`
	EndsAt    time.Time  `json:"endsAt"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Current reports whether the highlight boosts ranking at now
func (h *Highlight) Current(now time.Time) bool {
	return h.Status == StatusActive && h.EndsAt.After(now)
}
