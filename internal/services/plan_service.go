package services

import (
	"context"

	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
)

// PlanService implements plan.Service
type PlanService struct {
	repo   plan.Repository
	logger *logger.Logger
}

// NewPlanService creates a new plan service
func NewPlanService(repo plan.Repository, log *logger.Logger) plan.Service {
	return &PlanService{repo: repo, logger: log}
}

// List returns the catalog ordered by priority ascending
func (s *PlanService) List(ctx context.Context) ([]*plan.Plan, error) {
	return s.repo.List(ctx)
}

// GetByCode retrieves a plan by its tier code
func (s *PlanService) GetByCode(ctx context.Context, code plan.Code) (*plan.Plan, error) {
	if !code.Valid() {
		return nil, errors.NotFound("Plan")
	}
	return s.repo.GetByCode(ctx, code)
}

// GetByID retrieves a plan by ID
func (s *PlanService) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	return s.repo.GetByID(ctx, id)
}

// Seed inserts the embedded catalog. Existing plans are left untouched.
func (s *PlanService) Seed(ctx context.Context) error {
	plans, err := plan.Catalog()
	if err != nil {
		return errors.Internal("Failed to load plan catalog", err)
	}
	if err := s.repo.Seed(ctx, plans); err != nil {
		return err
	}
	s.logger.Infof("Plan catalog seeded (%d plans)", len(plans))
	return nil
}
