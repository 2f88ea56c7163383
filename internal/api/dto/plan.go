package dto

import (
	"time"

	"github.com/trampo-app/trampo/internal/domain/highlight"
	"github.com/trampo-app/trampo/internal/domain/plan"
)

// PlanDTO is a highlight plan; price is in reais
type PlanDTO struct {
	ID           string    `json:"id"`
	Code         plan.Code `json:"code"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	DurationDays int       `json:"durationDays"`
	Priority     int       `json:"priority"`
}

// ToPlanDTO converts a plan
func ToPlanDTO(p *plan.Plan) *PlanDTO {
	return &PlanDTO{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Price:        ToReais(p.PriceCents),
		DurationDays: p.DurationDays,
		Priority:     p.Priority,
	}
}

// ToPlanDTOs converts a plan list
func ToPlanDTOs(plans []*plan.Plan) []*PlanDTO {
	out := make([]*PlanDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, ToPlanDTO(p))
	}
	return out
}

// HighlightDTO is one entry of a user's highlight history
type HighlightDTO struct {
	ID       string           `json:"id"`
	Plan     *PlanDTO         `json:"plan,omitempty"`
	StartsAt time.Time        `json:"startsAt"`
	EndsAt   time.Time        `json:"endsAt"`
	Status   highlight.Status `json:"status"`
	Current  bool             `json:"current"`
}

// ToHighlightDTOs converts a highlight history as seen at now
func ToHighlightDTOs(hs []*highlight.Highlight, now time.Time) []*HighlightDTO {
	out := make([]*HighlightDTO, 0, len(hs))
	for _, h := range hs {
		d := &HighlightDTO{
			ID:       h.ID,
			StartsAt: h.StartsAt,
			EndsAt:   h.EndsAt,
			Status:   h.Status,
			Current:  h.Current(now),
		}
		if h.Plan != nil {
			d.Plan = ToPlanDTO(h.Plan)
		}
		out = append(out, d)
	}
	return out
}
