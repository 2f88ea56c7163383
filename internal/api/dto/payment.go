package dto

import (
	"github.com/trampo-app/trampo/internal/domain/ad"
	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/domain/plan"
)

// CheckoutRequest starts a highlight or ad purchase
type CheckoutRequest struct {
	PlanCode     string `json:"planCode" validate:"required"`
	PurchaseType string `json:"purchaseType" validate:"required,oneof=highlight ad"`
	SuccessURL   string `json:"successUrl,omitempty" validate:"omitempty,url"`
	CancelURL    string `json:"cancelUrl,omitempty" validate:"omitempty,url"`
	AdTitle      string `json:"adTitle,omitempty" validate:"omitempty,max=120"`
	AdContent    string `json:"adContent,omitempty" validate:"omitempty,max=1000"`
	AdTarget     string `json:"adTarget,omitempty"`
	AdImageURL   string `json:"adImageUrl,omitempty" validate:"omitempty,url"`
}

// ToDomain converts the request into a checkout input
func (r CheckoutRequest) ToDomain() payment.CheckoutInput {
	return payment.CheckoutInput{
		Type:       payment.PurchaseType(r.PurchaseType),
		PlanCode:   plan.Code(r.PlanCode),
		AdTitle:    r.AdTitle,
		AdContent:  r.AdContent,
		AdImageURL: r.AdImageURL,
		AdTarget:   ad.Target(r.AdTarget),
		SuccessURL: r.SuccessURL,
		CancelURL:  r.CancelURL,
	}
}

// JobBoostCheckoutRequest starts a vaga boost purchase. DurationDays
// defaults to 30 and must be between 1 and 365.
type JobBoostCheckoutRequest struct {
	VagaID       string `json:"vagaId" validate:"required"`
	DurationDays int    `json:"durationDays,omitempty"`
	SuccessURL   string `json:"successUrl,omitempty" validate:"omitempty,url"`
	CancelURL    string `json:"cancelUrl,omitempty" validate:"omitempty,url"`
}

// ToDomain converts the request into a checkout input
func (r JobBoostCheckoutRequest) ToDomain() payment.CheckoutInput {
	return payment.CheckoutInput{
		Type:         payment.TypeJobBoost,
		VagaID:       r.VagaID,
		DurationDays: r.DurationDays,
		SuccessURL:   r.SuccessURL,
		CancelURL:    r.CancelURL,
	}
}

// CheckoutResponse carries the hosted checkout URL
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

// WebhookResponse acknowledges a provider delivery
type WebhookResponse struct {
	Received bool `json:"received"`
}
