package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"testing"

	"github.com/trampo-app/trampo/internal/domain/ad"
	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/testutil"
)

const testBoostPrice = 2990

func newCheckout(env *testEnv, gateway payment.Gateway) payment.CheckoutService {
	return NewCheckoutService(gateway, env.plans, env.users, env.vagas, CheckoutConfig{
		AppBaseURL:         "https://trampo.test",
		JobBoostPriceCents: testBoostPrice,
	}, env.log)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected *errors.AppError, got %T: %v", err, err)
	}
	return appErr.StatusCode
}

func TestCheckoutService_Highlight(t *testing.T) {
	env := newTestEnv(t)
	gateway := testutil.NewMockGateway()
	svc := newCheckout(env, gateway)
	worker := env.user(t, user.RolePrestador, "ana")

	session, err := svc.Checkout(context.Background(), worker.ID, payment.CheckoutInput{
		Type:     payment.TypeHighlight,
		PlanCode: plan.CodeOuro,
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if !strings.HasPrefix(session.URL, "https://checkout.stripe.com/") {
		t.Errorf("Checkout() url = %q", session.URL)
	}

	req, ok := gateway.LastRequest()
	if !ok {
		t.Fatal("gateway was not called")
	}
	ouro := testutil.Plan(t, env.db, plan.CodeOuro)
	if req.AmountCents != ouro.PriceCents {
		t.Errorf("amount = %d, want %d", req.AmountCents, ouro.PriceCents)
	}
	if req.CustomerEmail != worker.Email {
		t.Errorf("customer email = %q, want %q", req.CustomerEmail, worker.Email)
	}
	if req.SuccessURL != "https://trampo.test/pagamento/sucesso?session_id={CHECKOUT_SESSION_ID}" {
		t.Errorf("success url = %q", req.SuccessURL)
	}
	md := req.Purchase.Metadata()
	if md[payment.KeyPlanID] != ouro.ID || md[payment.KeyUserID] != worker.ID {
		t.Errorf("metadata = %v", md)
	}
}

func TestCheckoutService_Validation(t *testing.T) {
	env := newTestEnv(t)
	worker := env.user(t, user.RolePrestador, "bia")
	employer := env.user(t, user.RoleEmpregador, "casa")
	other := env.user(t, user.RoleEmpregador, "outra")
	v := env.vaga(t, employer, "Diarista")

	tests := []struct {
		name   string
		userID string
		in     payment.CheckoutInput
		status int
	}{
		{
			name:   "worker cannot buy an ad",
			userID: worker.ID,
			in: payment.CheckoutInput{
				Type: payment.TypeAd, PlanCode: plan.CodeBronze,
				AdTitle: "Promo", AdContent: "Texto", AdTarget: ad.TargetAll,
			},
			status: http.StatusForbidden,
		},
		{
			name:   "ad requires title",
			userID: employer.ID,
			in: payment.CheckoutInput{
				Type: payment.TypeAd, PlanCode: plan.CodeBronze,
				AdContent: "Texto", AdTarget: ad.TargetWorkers,
			},
			status: http.StatusBadRequest,
		},
		{
			name:   "unknown plan",
			userID: worker.ID,
			in:     payment.CheckoutInput{Type: payment.TypeHighlight, PlanCode: "DIAMANTE"},
			status: http.StatusNotFound,
		},
		{
			name:   "missing plan code",
			userID: worker.ID,
			in:     payment.CheckoutInput{Type: payment.TypeHighlight},
			status: http.StatusBadRequest,
		},
		{
			name:   "boost longer than a year",
			userID: employer.ID,
			in:     payment.CheckoutInput{Type: payment.TypeJobBoost, VagaID: v.ID, DurationDays: 400},
			status: http.StatusBadRequest,
		},
		{
			name:   "negative boost",
			userID: employer.ID,
			in:     payment.CheckoutInput{Type: payment.TypeJobBoost, VagaID: v.ID, DurationDays: -1},
			status: http.StatusBadRequest,
		},
		{
			name:   "boost of someone else's vaga",
			userID: other.ID,
			in:     payment.CheckoutInput{Type: payment.TypeJobBoost, VagaID: v.ID},
			status: http.StatusForbidden,
		},
		{
			name:   "boost of missing vaga",
			userID: employer.ID,
			in:     payment.CheckoutInput{Type: payment.TypeJobBoost, VagaID: "00000000-0000-0000-0000-000000000000"},
			status: http.StatusNotFound,
		},
		{
			name:   "unknown purchase type",
			userID: worker.ID,
			in:     payment.CheckoutInput{Type: "subscription"},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := testutil.NewMockGateway()
			svc := newCheckout(env, gateway)

			_, err := svc.Checkout(context.Background(), tt.userID, tt.in)
			if err == nil {
				t.Fatal("Checkout() expected error")
			}
			if got := statusOf(t, err); got != tt.status {
				t.Errorf("status = %d, want %d (%v)", got, tt.status, err)
			}
			if len(gateway.Requests) != 0 {
				t.Error("gateway must not be called for a rejected request")
			}
		})
	}
}

func TestCheckoutService_JobBoostDefaults(t *testing.T) {
	env := newTestEnv(t)
	gateway := testutil.NewMockGateway()
	svc := newCheckout(env, gateway)
	employer := env.user(t, user.RoleEmpregador, "padaria")
	v := env.vaga(t, employer, "Padeiro")

	if _, err := svc.Checkout(context.Background(), employer.ID, payment.CheckoutInput{
		Type:   payment.TypeJobBoost,
		VagaID: v.ID,
	}); err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	req, _ := gateway.LastRequest()
	if req.AmountCents != testBoostPrice {
		t.Errorf("amount = %d, want %d", req.AmountCents, testBoostPrice)
	}
	if got := req.Purchase.Metadata()[payment.KeyDurationDays]; got != "30" {
		t.Errorf("durationDays = %q, want 30", got)
	}
}

func TestCheckoutService_NotConfigured(t *testing.T) {
	env := newTestEnv(t)
	svc := newCheckout(env, nil)
	worker := env.user(t, user.RolePrestador, "caio")

	_, err := svc.Checkout(context.Background(), worker.ID, payment.CheckoutInput{
		Type:     payment.TypeHighlight,
		PlanCode: plan.CodeBronze,
	})
	if !errors.Is(err, errors.ErrCodeNotConfigured) {
		t.Fatalf("Checkout() error = %v, want not configured", err)
	}
	if statusOf(t, err) != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", statusOf(t, err))
	}
}

func TestCheckoutService_ProviderFailure(t *testing.T) {
	env := newTestEnv(t)
	gateway := testutil.NewMockGateway()
	gateway.CreateErr = stderrors.New("stripe: connection reset")
	svc := newCheckout(env, gateway)
	worker := env.user(t, user.RolePrestador, "davi")

	_, err := svc.Checkout(context.Background(), worker.ID, payment.CheckoutInput{
		Type:     payment.TypeHighlight,
		PlanCode: plan.CodePrata,
	})
	if !errors.Is(err, errors.ErrCodePaymentProvider) {
		t.Fatalf("Checkout() error = %v, want provider error", err)
	}
}
