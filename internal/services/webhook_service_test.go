package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/trampo-app/trampo/internal/config"
	"github.com/trampo-app/trampo/internal/domain/highlight"
	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/payments"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/testutil"
)

const testWebhookSecret = "whsec_test_secret"

func newWebhook(env *testEnv) payment.WebhookService {
	gateway := payments.NewStripeGateway(config.StripeConfig{WebhookSecret: testWebhookSecret})
	return NewWebhookService(gateway, env.events, env.fulfillers(), env.notifier, env.log)
}

func deliver(t *testing.T, svc payment.WebhookService, payload []byte) (*payment.WebhookResult, error) {
	t.Helper()
	sig := testutil.SignStripePayload(testWebhookSecret, payload)
	return svc.HandleWebhook(context.Background(), payload, sig)
}

func TestWebhookService_HighlightFulfilledOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := newWebhook(env)
	worker := env.user(t, user.RolePrestador, "eva")
	prata := testutil.Plan(t, env.db, plan.CodePrata)

	md := payment.HighlightPurchase{UserID: worker.ID, PlanID: prata.ID, PlanCode: prata.Code}.Metadata()
	payload := testutil.CheckoutCompletedPayload("evt_1", "cs_test_1", "paid", md)

	res, err := deliver(t, svc, payload)
	if err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}
	if res.Outcome != payment.OutcomeFulfilled {
		t.Fatalf("outcome = %q, want fulfilled", res.Outcome)
	}
	if remaining := time.Until(res.Mutation.EndsAt); remaining > prata.Duration() || remaining < prata.Duration()-time.Minute {
		t.Errorf("highlight ends in %v, want %v", remaining, prata.Duration())
	}

	// Stripe redelivers the same session under a new event id
	again := testutil.CheckoutCompletedPayload("evt_2", "cs_test_1", "paid", md)
	res, err = deliver(t, svc, again)
	if err != nil {
		t.Fatalf("redelivery error = %v", err)
	}
	if res.Outcome != payment.OutcomeDuplicate {
		t.Errorf("redelivery outcome = %q, want duplicate", res.Outcome)
	}

	hs, err := env.highlights.ListByUser(context.Background(), worker.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(hs) != 1 {
		t.Errorf("highlights = %d, want 1", len(hs))
	}

	ev, err := env.events.Get(context.Background(), "cs_test_1")
	if err != nil {
		t.Fatalf("events.Get() error = %v", err)
	}
	if ev.Status != payment.EventFulfilled {
		t.Errorf("event status = %q, want fulfilled", ev.Status)
	}

	sent := env.mailer.Sent()
	if len(sent) != 1 || sent[0].To != worker.Email {
		t.Errorf("confirmation emails = %+v", sent)
	}
}

func TestWebhookService_NewPurchaseSupersedesHighlight(t *testing.T) {
	env := newTestEnv(t)
	svc := newWebhook(env)
	worker := env.user(t, user.RolePrestador, "fabi")
	bronze := testutil.Plan(t, env.db, plan.CodeBronze)
	ouro := testutil.Plan(t, env.db, plan.CodeOuro)

	for i, p := range []*plan.Plan{bronze, ouro} {
		md := payment.HighlightPurchase{UserID: worker.ID, PlanID: p.ID, PlanCode: p.Code}.Metadata()
		sessionID := []string{"cs_a", "cs_b"}[i]
		if _, err := deliver(t, svc, testutil.CheckoutCompletedPayload("evt_"+sessionID, sessionID, "paid", md)); err != nil {
			t.Fatalf("HandleWebhook(%s) error = %v", sessionID, err)
		}
	}

	hs, err := env.highlights.ListByUser(context.Background(), worker.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	active := 0
	for _, h := range hs {
		if h.Status == highlight.StatusActive {
			active++
			if h.PlanID != ouro.ID {
				t.Errorf("active highlight plan = %s, want OURO", h.PlanID)
			}
		}
	}
	if active != 1 {
		t.Errorf("active highlights = %d, want 1", active)
	}
}

func TestWebhookService_JobBoost(t *testing.T) {
	env := newTestEnv(t)
	svc := newWebhook(env)
	owner := env.user(t, user.RoleEmpregador, "loja")
	stranger := env.user(t, user.RoleEmpregador, "intrusa")
	v := env.vaga(t, owner, "Vendedor")

	t.Run("non-owner is rejected without changes", func(t *testing.T) {
		md := payment.JobBoostPurchase{UserID: stranger.ID, VagaID: v.ID, DurationDays: 7}.Metadata()
		res, err := deliver(t, svc, testutil.CheckoutCompletedPayload("evt_r", "cs_reject", "paid", md))
		if err != nil {
			t.Fatalf("HandleWebhook() error = %v, want acknowledged", err)
		}
		if res.Outcome != payment.OutcomeRejected {
			t.Errorf("outcome = %q, want rejected", res.Outcome)
		}
		got, err := env.vagas.GetByID(context.Background(), v.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.IsPaidAd {
			t.Error("vaga must not be boosted by a non-owner")
		}
		ev, _ := env.events.Get(context.Background(), "cs_reject")
		if ev == nil || ev.Status != payment.EventRejected {
			t.Errorf("event = %+v, want rejected", ev)
		}
	})

	t.Run("owner boost", func(t *testing.T) {
		md := payment.JobBoostPurchase{UserID: owner.ID, VagaID: v.ID, DurationDays: 7}.Metadata()
		res, err := deliver(t, svc, testutil.CheckoutCompletedPayload("evt_b", "cs_boost", "paid", md))
		if err != nil {
			t.Fatalf("HandleWebhook() error = %v", err)
		}
		if res.Outcome != payment.OutcomeFulfilled {
			t.Fatalf("outcome = %q, want fulfilled", res.Outcome)
		}
		got, err := env.vagas.GetByID(context.Background(), v.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if !got.IsPaidAd || got.PaidAdExpiresAt == nil {
			t.Fatal("vaga should be boosted")
		}
		if !got.PaidAdExpiresAt.Equal(res.Mutation.EndsAt) {
			t.Errorf("expires = %v, want %v", got.PaidAdExpiresAt, res.Mutation.EndsAt)
		}
	})
}

func TestWebhookService_AcknowledgedWithoutChanges(t *testing.T) {
	env := newTestEnv(t)
	svc := newWebhook(env)
	worker := env.user(t, user.RolePrestador, "gil")
	md := payment.HighlightPurchase{UserID: worker.ID, PlanCode: plan.CodeBronze}.Metadata()

	tests := []struct {
		name    string
		payload []byte
		outcome string
	}{
		{
			name:    "other event types",
			payload: testutil.EventPayload("evt_x", "payment_intent.created"),
			outcome: payment.OutcomeIgnored,
		},
		{
			name:    "unpaid checkout",
			payload: testutil.CheckoutCompletedPayload("evt_u", "cs_unpaid", "unpaid", md),
			outcome: payment.OutcomeUnpaid,
		},
		{
			name: "metadata without purchase type",
			payload: testutil.CheckoutCompletedPayload("evt_m", "cs_bad", "paid", map[string]string{
				payment.KeyUserID: worker.ID,
			}),
			outcome: payment.OutcomeInvalidMetadata,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := deliver(t, svc, tt.payload)
			if err != nil {
				t.Fatalf("HandleWebhook() error = %v", err)
			}
			if res.Outcome != tt.outcome {
				t.Errorf("outcome = %q, want %q", res.Outcome, tt.outcome)
			}
		})
	}

	hs, _ := env.highlights.ListByUser(context.Background(), worker.ID)
	if len(hs) != 0 {
		t.Errorf("highlights = %d, want 0", len(hs))
	}
	if len(env.mailer.Sent()) != 0 {
		t.Error("no email expected")
	}
}

func TestWebhookService_MissingPlanIsRetried(t *testing.T) {
	env := newTestEnv(t)
	svc := newWebhook(env)
	worker := env.user(t, user.RolePrestador, "gil")

	md := payment.HighlightPurchase{UserID: worker.ID, PlanID: "plan-that-was-deleted", PlanCode: plan.CodeOuro}.Metadata()
	payload := testutil.CheckoutCompletedPayload("evt_gone", "cs_gone", "paid", md)

	_, err := deliver(t, svc, payload)
	if err == nil {
		t.Fatal("HandleWebhook() error = nil, want a failure")
	}
	if statusOf(t, err) != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", statusOf(t, err))
	}

	// The claim is released so the redelivery runs the fulfilment again
	if _, err := env.events.Get(context.Background(), "cs_gone"); !errors.IsNotFound(err) {
		t.Errorf("events.Get() error = %v, want not found", err)
	}
	hs, err := env.highlights.ListByUser(context.Background(), worker.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(hs) != 0 {
		t.Errorf("highlights = %d, want 0", len(hs))
	}
}

func TestWebhookService_BadSignature(t *testing.T) {
	env := newTestEnv(t)
	svc := newWebhook(env)
	payload := testutil.EventPayload("evt_s", "checkout.session.completed")

	_, err := svc.HandleWebhook(context.Background(), payload, testutil.SignStripePayload("whsec_other", payload))
	if !errors.Is(err, errors.ErrCodeInvalidSignature) {
		t.Fatalf("HandleWebhook() error = %v, want invalid signature", err)
	}
	if statusOf(t, err) != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", statusOf(t, err))
	}
}

func TestWebhookService_NotConfigured(t *testing.T) {
	env := newTestEnv(t)
	svc := NewWebhookService(payments.NewStripeGateway(config.StripeConfig{}), env.events, env.fulfillers(), nil, env.log)

	_, err := svc.HandleWebhook(context.Background(), []byte(`{}`), "t=1,v1=00")
	if !errors.Is(err, errors.ErrCodeNotConfigured) {
		t.Fatalf("HandleWebhook() error = %v, want not configured", err)
	}
}
