package services

import (
	"context"
	"fmt"
	"time"

	"github.com/trampo-app/trampo/internal/domain/ad"
	"github.com/trampo-app/trampo/internal/domain/highlight"
	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/policy"
)

// resolvePlan finds the plan a purchase paid for, by id when present
func resolvePlan(ctx context.Context, plans plan.Repository, id string, code plan.Code) (*plan.Plan, error) {
	if id != "" {
		return plans.GetByID(ctx, id)
	}
	return plans.GetByCode(ctx, code)
}

// HighlightFulfiller supersedes the buyer's highlight with a new one
type HighlightFulfiller struct {
	plans      plan.Repository
	highlights highlight.Repository
}

// NewHighlightFulfiller creates a highlight fulfiller
func NewHighlightFulfiller(plans plan.Repository, highlights highlight.Repository) *HighlightFulfiller {
	return &HighlightFulfiller{plans: plans, highlights: highlights}
}

// Fulfil closes every ACTIVE highlight of the buyer and opens a new one for
// the plan duration, in one transaction
func (f *HighlightFulfiller) Fulfil(ctx context.Context, p payment.Purchase, now time.Time) (*payment.LedgerMutation, error) {
	hp, ok := p.(payment.HighlightPurchase)
	if !ok {
		return nil, fmt.Errorf("highlight fulfiller got %s purchase", p.Type())
	}

	pl, err := resolvePlan(ctx, f.plans, hp.PlanID, hp.PlanCode)
	if err != nil {
		return nil, err
	}

	h := &highlight.Highlight{
		UserID:   hp.UserID,
		PlanID:   pl.ID,
		StartsAt: now,
		EndsAt:   now.Add(pl.Duration()),
		Status:   highlight.StatusActive,
	}
	if err := f.highlights.Supersede(ctx, h, now); err != nil {
		return nil, err
	}

	return &payment.LedgerMutation{
		Kind:     payment.TypeHighlight,
		UserID:   hp.UserID,
		RecordID: h.ID,
		Label:    "Destaque " + pl.Name,
		EndsAt:   h.EndsAt,
	}, nil
}

// AdFulfiller publishes a paid ad
type AdFulfiller struct {
	plans plan.Repository
	ads   ad.Repository
}

// NewAdFulfiller creates an ad fulfiller
func NewAdFulfiller(plans plan.Repository, ads ad.Repository) *AdFulfiller {
	return &AdFulfiller{plans: plans, ads: ads}
}

// Fulfil expires the buyer's elapsed ads, then inserts the new ad. The two
// writes are not atomic; a retried delivery repeats the expiry harmlessly.
func (f *AdFulfiller) Fulfil(ctx context.Context, p payment.Purchase, now time.Time) (*payment.LedgerMutation, error) {
	ap, ok := p.(payment.AdPurchase)
	if !ok {
		return nil, fmt.Errorf("ad fulfiller got %s purchase", p.Type())
	}

	pl, err := resolvePlan(ctx, f.plans, ap.PlanID, ap.PlanCode)
	if err != nil {
		return nil, err
	}

	expired, err := f.ads.ExpireElapsed(ctx, ap.UserID, now)
	if err != nil {
		return nil, err
	}

	a := &ad.Ad{
		UserID:   ap.UserID,
		PlanID:   pl.ID,
		Title:    ap.Title,
		Content:  ap.Content,
		ImageURL: ap.ImageURL,
		Target:   ap.Target,
		StartsAt: now,
		EndsAt:   now.Add(pl.Duration()),
		Status:   ad.StatusActive,
	}
	if err := f.ads.Create(ctx, a); err != nil {
		return nil, err
	}

	return &payment.LedgerMutation{
		Kind:       payment.TypeAd,
		UserID:     ap.UserID,
		RecordID:   a.ID,
		Label:      "Anúncio " + pl.Name + ": " + a.Title,
		EndsAt:     a.EndsAt,
		Superseded: expired,
	}, nil
}

// JobBoostFulfiller promotes a vaga in the public listing
type JobBoostFulfiller struct {
	vagas vaga.Repository
}

// NewJobBoostFulfiller creates a job boost fulfiller
func NewJobBoostFulfiller(vagas vaga.Repository) *JobBoostFulfiller {
	return &JobBoostFulfiller{vagas: vagas}
}

// Fulfil marks the vaga as boosted for the purchased number of days. A vaga
// that is gone or not owned by the buyer rejects the purchase.
func (f *JobBoostFulfiller) Fulfil(ctx context.Context, p payment.Purchase, now time.Time) (*payment.LedgerMutation, error) {
	jp, ok := p.(payment.JobBoostPurchase)
	if !ok {
		return nil, fmt.Errorf("job boost fulfiller got %s purchase", p.Type())
	}

	v, err := f.vagas.GetByID(ctx, jp.VagaID)
	if errors.IsNotFound(err) {
		return nil, fmt.Errorf("%w: vaga %s not found", payment.ErrRejected, jp.VagaID)
	}
	if err != nil {
		return nil, err
	}
	if !policy.Owns(jp.UserID, v) {
		return nil, fmt.Errorf("%w: vaga %s is not owned by %s", payment.ErrRejected, v.ID, jp.UserID)
	}

	expiresAt := now.AddDate(0, 0, vaga.BoostDays(jp.DurationDays))
	if err := f.vagas.MarkBoosted(ctx, v.ID, expiresAt, now); err != nil {
		return nil, err
	}

	return &payment.LedgerMutation{
		Kind:     payment.TypeJobBoost,
		UserID:   jp.UserID,
		RecordID: v.ID,
		Label:    "Vaga em destaque: " + v.Title,
		EndsAt:   expiresAt,
	}, nil
}
