package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/domain/payment"
)

// Currency of every checkout
const Currency = "brl"

// StripeGateway implements payment.Gateway on Stripe Checkout
type StripeGateway struct {
	secretKey     string
	webhookSecret string
	sessions      session.Client
}

// NewGateway returns a Stripe gateway when either secret is configured, and
// nil when payments are fully disabled. A gateway with only the webhook
// secret still verifies deliveries; checkout then reports ErrNotConfigured.
func NewGateway(cfg config.StripeConfig) payment.Gateway {
	if cfg.SecretKey == "" && cfg.WebhookSecret == "" {
		return nil
	}
	return NewStripeGateway(cfg)
}

// NewStripeGateway creates a gateway using Stripe's default API backend
func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	return NewStripeGatewayWithBackend(cfg, stripe.GetBackend(stripe.APIBackend))
}

// NewStripeGatewayWithBackend creates a gateway talking to a custom backend
func NewStripeGatewayWithBackend(cfg config.StripeConfig, backend stripe.Backend) *StripeGateway {
	return &StripeGateway{
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		sessions:      session.Client{B: backend, Key: cfg.SecretKey},
	}
}

// CreateCheckoutSession opens a one-item hosted checkout carrying the
// purchase metadata
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	if g.secretKey == "" {
		return nil, payment.ErrNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
					UnitAmount: stripe.Int64(req.AmountCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.Purchase.Buyer()),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for k, v := range req.Purchase.Metadata() {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &payment.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*payment.WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, payment.ErrNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrInvalidSignature, err)
	}

	out := &payment.WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if out.Type != payment.EventCheckoutCompleted {
		return out, nil
	}

	if event.Data == nil {
		return nil, fmt.Errorf("%w: event has no data", payment.ErrInvalidSignature)
	}
	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	out.Checkout = &payment.CheckoutCompleted{
		SessionID:     cs.ID,
		PaymentStatus: string(cs.PaymentStatus),
		Metadata:      cs.Metadata,
	}
	return out, nil
}
