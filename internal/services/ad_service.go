package services

import (
	"context"
	"time"

	"github.com/trampo-app/trampo/internal/domain/ad"
)

// maxListedAds bounds the public ad listing
const maxListedAds = 20

// AdService implements ad.Service
type AdService struct {
	repo ad.Repository
	now  func() time.Time
}

// NewAdService creates a new ad service
func NewAdService(repo ad.Repository) ad.Service {
	return &AdService{repo: repo, now: time.Now}
}

// ListCurrent returns the ads on display for audience. Without an audience
// only ads targeted at everyone are listed.
func (s *AdService) ListCurrent(ctx context.Context, audience ad.Target) ([]*ad.Ad, error) {
	if audience == "" {
		audience = ad.TargetAll
	}
	return s.repo.ListCurrent(ctx, audience, s.now(), maxListedAds)
}

// ListMine returns every ad bought by userID
func (s *AdService) ListMine(ctx context.Context, userID string) ([]*ad.Ad, error) {
	return s.repo.ListByOwner(ctx, userID)
}
