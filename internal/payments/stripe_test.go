package payments

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stripe/stripe-go/v76"

	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/testutil"
)

const whsec = "whsec_test"

func TestParseWebhook(t *testing.T) {
	g := NewStripeGateway(config.StripeConfig{SecretKey: "sk_test", WebhookSecret: whsec})
	md := map[string]string{"purchaseType": "highlight", "userId": "u1", "planCode": "OURO"}
	payload := testutil.CheckoutCompletedPayload("evt_1", "cs_1", "paid", md)

	ev, err := g.ParseWebhook(payload, testutil.SignStripePayload(whsec, payload))
	if err != nil {
		t.Fatalf("ParseWebhook() error = %v", err)
	}
	if ev.ID != "evt_1" || ev.Type != payment.EventCheckoutCompleted {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.Checkout == nil || ev.Checkout.SessionID != "cs_1" || !ev.Checkout.Paid() {
		t.Fatalf("unexpected checkout %+v", ev.Checkout)
	}
	if ev.Checkout.Metadata["planCode"] != "OURO" {
		t.Errorf("metadata = %v", ev.Checkout.Metadata)
	}
}

func TestParseWebhookRejects(t *testing.T) {
	payload := testutil.CheckoutCompletedPayload("evt_1", "cs_1", "paid", nil)

	t.Run("wrong secret", func(t *testing.T) {
		g := NewStripeGateway(config.StripeConfig{WebhookSecret: whsec})
		_, err := g.ParseWebhook(payload, testutil.SignStripePayload("whsec_other", payload))
		if !errors.Is(err, payment.ErrInvalidSignature) {
			t.Errorf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("tampered payload", func(t *testing.T) {
		g := NewStripeGateway(config.StripeConfig{WebhookSecret: whsec})
		sig := testutil.SignStripePayload(whsec, payload)
		tampered := testutil.CheckoutCompletedPayload("evt_1", "cs_2", "paid", nil)
		_, err := g.ParseWebhook(tampered, sig)
		if !errors.Is(err, payment.ErrInvalidSignature) {
			t.Errorf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		g := NewStripeGateway(config.StripeConfig{WebhookSecret: whsec})
		if _, err := g.ParseWebhook(payload, ""); !errors.Is(err, payment.ErrInvalidSignature) {
			t.Errorf("expected ErrInvalidSignature, got %v", err)
		}
	})

	t.Run("not configured", func(t *testing.T) {
		g := NewStripeGateway(config.StripeConfig{})
		if _, err := g.ParseWebhook(payload, "t=1,v1=00"); !errors.Is(err, payment.ErrNotConfigured) {
			t.Errorf("expected ErrNotConfigured, got %v", err)
		}
	})
}

func TestParseWebhookOtherEvent(t *testing.T) {
	g := NewStripeGateway(config.StripeConfig{WebhookSecret: whsec})
	payload := testutil.EventPayload("evt_2", "payment_intent.created")

	ev, err := g.ParseWebhook(payload, testutil.SignStripePayload(whsec, payload))
	if err != nil {
		t.Fatalf("ParseWebhook() error = %v", err)
	}
	if ev.Checkout != nil {
		t.Errorf("expected no checkout payload for %s", ev.Type)
	}
}

func TestCreateCheckoutSession(t *testing.T) {
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = r.ParseForm()
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_1","object":"checkout.session","url":"https://checkout.stripe.com/c/pay/cs_test_1"}`))
	}))
	defer srv.Close()

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		MaxNetworkRetries: stripe.Int64(0),
	})
	g := NewStripeGatewayWithBackend(config.StripeConfig{SecretKey: "sk_test"}, backend)

	s, err := g.CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
		Purchase:    payment.HighlightPurchase{UserID: "u1", PlanID: "p1", PlanCode: plan.CodeOuro},
		ProductName: "Destaque Ouro",
		AmountCents: 6990,
		SuccessURL:  "https://trampo.app/ok",
		CancelURL:   "https://trampo.app/cancel",
	})
	if err != nil {
		t.Fatalf("CreateCheckoutSession() error = %v", err)
	}
	if s.URL != "https://checkout.stripe.com/c/pay/cs_test_1" {
		t.Errorf("URL = %s", s.URL)
	}

	checks := map[string]string{
		"mode":                                          "payment",
		"line_items[0][price_data][currency]":           "brl",
		"line_items[0][price_data][unit_amount]":        "6990",
		"line_items[0][price_data][product_data][name]": "Destaque Ouro",
		"metadata[userId]":                              "u1",
		"metadata[planCode]":                            "OURO",
		"metadata[purchaseType]":                        "highlight",
	}
	for k, want := range checks {
		if got := form.Get(k); got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

func TestCreateCheckoutSessionNotConfigured(t *testing.T) {
	g := NewStripeGateway(config.StripeConfig{})
	_, err := g.CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
		Purchase: payment.HighlightPurchase{UserID: "u1"},
	})
	if !errors.Is(err, payment.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAllowList(t *testing.T) {
	a := NewAllowList(StripeWebhookIPs)
	tests := []struct {
		remote string
		want   bool
	}{
		{"3.18.12.63", true},
		{"54.187.216.72:443", true},
		{"[::ffff:3.18.12.63]:1234", true},
		{"10.0.0.1", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := a.Allows(tt.remote); got != tt.want {
			t.Errorf("Allows(%q) = %v, want %v", tt.remote, got, tt.want)
		}
	}
}

func TestNewGateway(t *testing.T) {
	if g := NewGateway(config.StripeConfig{}); g != nil {
		t.Fatalf("NewGateway() with no secrets = %v, want nil", g)
	}

	g := NewGateway(config.StripeConfig{WebhookSecret: whsec})
	if g == nil {
		t.Fatal("NewGateway() with only a webhook secret = nil")
	}
	payload := testutil.EventPayload("evt_2", "payment_intent.created")
	if _, err := g.ParseWebhook(payload, testutil.SignStripePayload(whsec, payload)); err != nil {
		t.Errorf("ParseWebhook() error = %v", err)
	}
	_, err := g.CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
		Purchase: payment.HighlightPurchase{UserID: "u1", PlanCode: plan.CodeOuro},
	})
	if !errors.Is(err, payment.ErrNotConfigured) {
		t.Errorf("CreateCheckoutSession() error = %v, want ErrNotConfigured", err)
	}
}
