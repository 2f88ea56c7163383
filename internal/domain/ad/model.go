package ad

import "time"

// Target is the audience an ad is shown to
type Target string

const (
	TargetAll       Target = "ALL"
	TargetWorkers   Target = "WORKERS"
	TargetEmployers Target = "EMPLOYERS"
)

// Valid reports whether t is a known audience
func (t Target) Valid() bool {
	switch t {
	case TargetAll, TargetWorkers, TargetEmployers:
		return true
	}
	return false
}

// Status of an ad placement. Like highlights, ads are expired lazily, so
// ACTIVE only means "active as of the last write".
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusExpired Status = "EXPIRED"
)

// Ad is a sponsored placement priced from a highlight plan
type Ad struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	PlanID    string    `json:"planId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Target    Target    `json:"target"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// OwnerID returns the advertiser
func (a *Ad) OwnerID() string {
	return a.UserID
}

// Current reports whether the ad is on display at now
func (a *Ad) Current(now time.Time) bool {
	return a.Status == StatusActive && a.EndsAt.After(now)
}
