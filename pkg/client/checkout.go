package client

import (
	"context"
	"net/http"
)

// CheckoutService starts hosted payment sessions
type CheckoutService struct {
	client *Client
}

// CheckoutRequest buys a highlight plan or an ad
type CheckoutRequest struct {
	PlanCode     string `json:"planCode"`
	PurchaseType string `json:"purchaseType"` // highlight or ad
	SuccessURL   string `json:"successUrl,omitempty"`
	CancelURL    string `json:"cancelUrl,omitempty"`
	AdTitle      string `json:"adTitle,omitempty"`
	AdContent    string `json:"adContent,omitempty"`
	AdTarget     string `json:"adTarget,omitempty"` // WORKERS, EMPLOYERS or ALL
	AdImageURL   string `json:"adImageUrl,omitempty"`
}

// JobBoostRequest buys a boost for a vaga
type JobBoostRequest struct {
	VagaID       string `json:"vagaId"`
	DurationDays int    `json:"durationDays,omitempty"`
	SuccessURL   string `json:"successUrl,omitempty"`
	CancelURL    string `json:"cancelUrl,omitempty"`
}

// CheckoutResponse holds the hosted checkout page to redirect to
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// Highlight starts a highlight plan purchase
func (s *CheckoutService) Highlight(ctx context.Context, planCode string) (*CheckoutResponse, error) {
	return s.Start(ctx, CheckoutRequest{PlanCode: planCode, PurchaseType: "highlight"})
}

// Start starts a highlight or ad purchase
func (s *CheckoutService) Start(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	var resp CheckoutResponse
	if err := s.client.doRequest(ctx, http.MethodPost, apiPrefix+"/payments/checkout", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// JobBoost starts a vaga boost purchase
func (s *CheckoutService) JobBoost(ctx context.Context, req JobBoostRequest) (*CheckoutResponse, error) {
	var resp CheckoutResponse
	if err := s.client.doRequest(ctx, http.MethodPost, apiPrefix+"/vagas/paid", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
