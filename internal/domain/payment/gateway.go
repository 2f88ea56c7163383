package payment

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned when provider credentials are missing
	ErrNotConfigured = errors.New("payment provider not configured")
	// ErrInvalidSignature is returned when a webhook payload fails verification
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

// EventCheckoutCompleted is the only provider event that fulfils purchases
const EventCheckoutCompleted = "checkout.session.completed"

// CheckoutRequest describes a single-item hosted checkout
type CheckoutRequest struct {
	Purchase      Purchase
	ProductName   string
	AmountCents   int64
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// CheckoutSession is the provider's hosted checkout page
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"checkoutUrl"`
}

// CheckoutCompleted is the payload of a completed checkout event
type CheckoutCompleted struct {
	SessionID     string
	PaymentStatus string
	Metadata      map[string]string
}

// Paid reports whether the provider captured the payment
func (c *CheckoutCompleted) Paid() bool {
	return c.PaymentStatus == "paid"
}

// WebhookEvent is a verified provider event. Checkout is set only for
// checkout.session.completed events.
type WebhookEvent struct {
	ID       string
	Type     string
	Checkout *CheckoutCompleted
}

// Gateway is the payment provider
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	// ParseWebhook verifies the signature header and decodes the event
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
