package payment

import (
	"context"

	"github.com/trampo-app/trampo/internal/domain/ad"
	"github.com/trampo-app/trampo/internal/domain/plan"
)

// CheckoutInput is a purchase request before validation
type CheckoutInput struct {
	Type         PurchaseType
	PlanCode     plan.Code
	VagaID       string
	DurationDays int
	AdTitle      string
	AdContent    string
	AdImageURL   string
	AdTarget     ad.Target
	SuccessURL   string
	CancelURL    string
}

// CheckoutService starts hosted checkouts
type CheckoutService interface {
	Checkout(ctx context.Context, userID string, in CheckoutInput) (*CheckoutSession, error)
}

// WebhookService consumes provider events
type WebhookService interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error)
}
