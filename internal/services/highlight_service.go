package services

import (
	"context"
	"time"

	"github.com/trampo-app/trampo/internal/domain/highlight"
	"github.com/trampo-app/trampo/internal/domain/plan"
)

// HighlightService implements highlight.Service
type HighlightService struct {
	repo highlight.Repository
	now  func() time.Time
}

// NewHighlightService creates a new highlight service
func NewHighlightService(repo highlight.Repository) highlight.Service {
	return &HighlightService{repo: repo, now: time.Now}
}

// ListForUser returns the user's highlight history, most recent first
func (s *HighlightService) ListForUser(ctx context.Context, userID string) ([]*highlight.Highlight, error) {
	return s.repo.ListByUser(ctx, userID)
}

// CurrentPlan returns the plan currently boosting userID, or nil
func (s *HighlightService) CurrentPlan(ctx context.Context, userID string) (*plan.Plan, error) {
	plans, err := s.repo.CurrentPlans(ctx, []string{userID}, s.now())
	if err != nil {
		return nil, err
	}
	return plans[userID], nil
}
