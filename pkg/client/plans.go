package client

import (
	"context"
	"net/http"
)

// PlanService handles highlight plan API calls
type PlanService struct {
	client *Client
}

// List retrieves the highlight plans, cheapest first
func (s *PlanService) List(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := s.client.doRequest(ctx, http.MethodGet, apiPrefix+"/highlight-plans", nil, nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// Highlights retrieves the caller's highlight history
func (s *PlanService) Highlights(ctx context.Context) ([]Highlight, error) {
	var highlights []Highlight
	if err := s.client.doRequest(ctx, http.MethodGet, apiPrefix+"/highlights", nil, nil, &highlights); err != nil {
		return nil, err
	}
	return highlights, nil
}
