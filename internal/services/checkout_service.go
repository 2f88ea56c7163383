package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/metrics"
	"github.com/trampo-app/trampo/internal/policy"
)

// CheckoutConfig holds the pricing and redirect settings of checkouts
type CheckoutConfig struct {
	AppBaseURL         string
	JobBoostPriceCents int64
}

// CheckoutService implements payment.CheckoutService. Nothing is persisted
// until the provider confirms the payment through the webhook.
type CheckoutService struct {
	gateway payment.Gateway
	plans   plan.Repository
	users   user.Repository
	vagas   vaga.Repository
	cfg     CheckoutConfig
	logger  *logger.Logger
}

// NewCheckoutService creates a new checkout service. gateway may be nil when
// payments are not configured.
func NewCheckoutService(
	gateway payment.Gateway,
	plans plan.Repository,
	users user.Repository,
	vagas vaga.Repository,
	cfg CheckoutConfig,
	log *logger.Logger,
) payment.CheckoutService {
	return &CheckoutService{
		gateway: gateway,
		plans:   plans,
		users:   users,
		vagas:   vagas,
		cfg:     cfg,
		logger:  log,
	}
}

// Checkout validates a purchase request and opens a hosted checkout for it
func (s *CheckoutService) Checkout(ctx context.Context, userID string, in payment.CheckoutInput) (*payment.CheckoutSession, error) {
	buyer, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var req *payment.CheckoutRequest
	switch in.Type {
	case payment.TypeHighlight:
		req, err = s.highlightRequest(ctx, buyer, in)
	case payment.TypeAd:
		req, err = s.adRequest(ctx, buyer, in)
	case payment.TypeJobBoost:
		req, err = s.jobBoostRequest(ctx, buyer, in)
	default:
		err = errors.FieldError("purchaseType", "must be highlight, ad or jobHighlight")
	}
	if err != nil {
		return nil, err
	}

	if s.gateway == nil {
		return nil, errors.NotConfigured("Payment provider")
	}

	req.CustomerEmail = buyer.Email
	req.SuccessURL = nonEmpty(in.SuccessURL, s.cfg.AppBaseURL+"/pagamento/sucesso?session_id={CHECKOUT_SESSION_ID}")
	req.CancelURL = nonEmpty(in.CancelURL, s.cfg.AppBaseURL+"/pagamento/cancelado")

	session, err := s.gateway.CreateCheckoutSession(ctx, *req)
	if err != nil {
		metrics.RecordCheckout(string(in.Type), "failed")
		if stderrors.Is(err, payment.ErrNotConfigured) {
			return nil, errors.NotConfigured("Payment provider")
		}
		s.logger.ErrorWithErr(err, "Failed to create checkout session")
		return nil, errors.PaymentProviderError(err)
	}

	metrics.RecordCheckout(string(in.Type), "created")
	s.logger.WithFields(map[string]interface{}{
		"user_id":       userID,
		"purchase_type": in.Type,
		"session_id":    session.ID,
	}).Info("Checkout session created")

	return session, nil
}

func (s *CheckoutService) highlightRequest(ctx context.Context, buyer *user.User, in payment.CheckoutInput) (*payment.CheckoutRequest, error) {
	p, err := s.plan(ctx, in.PlanCode)
	if err != nil {
		return nil, err
	}
	return &payment.CheckoutRequest{
		Purchase: payment.HighlightPurchase{
			UserID:   buyer.ID,
			PlanID:   p.ID,
			PlanCode: p.Code,
		},
		ProductName: "Destaque " + p.Name,
		AmountCents: p.PriceCents,
	}, nil
}

func (s *CheckoutService) adRequest(ctx context.Context, buyer *user.User, in payment.CheckoutInput) (*payment.CheckoutRequest, error) {
	if err := policy.RequireRole(buyer, user.RoleEmpregador); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.AdTitle)
	content := strings.TrimSpace(in.AdContent)
	var fields []map[string]string
	if title == "" {
		fields = append(fields, map[string]string{"field": "adTitle", "message": "is required"})
	}
	if content == "" {
		fields = append(fields, map[string]string{"field": "adContent", "message": "is required"})
	}
	if !in.AdTarget.Valid() {
		fields = append(fields, map[string]string{"field": "adTarget", "message": "must be ALL, WORKERS or EMPLOYERS"})
	}
	if len(fields) > 0 {
		return nil, errors.ValidationError("Validation failed", fields)
	}

	p, err := s.plan(ctx, in.PlanCode)
	if err != nil {
		return nil, err
	}
	return &payment.CheckoutRequest{
		Purchase: payment.AdPurchase{
			UserID:   buyer.ID,
			PlanID:   p.ID,
			PlanCode: p.Code,
			Title:    title,
			Content:  content,
			ImageURL: strings.TrimSpace(in.AdImageURL),
			Target:   in.AdTarget,
		},
		ProductName: "Anúncio " + p.Name,
		AmountCents: p.PriceCents,
	}, nil
}

func (s *CheckoutService) jobBoostRequest(ctx context.Context, buyer *user.User, in payment.CheckoutInput) (*payment.CheckoutRequest, error) {
	if in.VagaID == "" {
		return nil, errors.FieldError("vagaId", "is required")
	}
	days := in.DurationDays
	if days == 0 {
		days = vaga.DefaultBoostDays
	}
	if days < 1 || days > vaga.MaxBoostDays {
		return nil, errors.FieldError("durationDays", fmt.Sprintf("must be between 1 and %d", vaga.MaxBoostDays))
	}

	v, err := s.vagas.GetByID(ctx, in.VagaID)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwner(buyer.ID, v, "boost this vaga"); err != nil {
		return nil, err
	}

	return &payment.CheckoutRequest{
		Purchase: payment.JobBoostPurchase{
			UserID:       buyer.ID,
			VagaID:       v.ID,
			DurationDays: days,
		},
		ProductName: fmt.Sprintf("Vaga em destaque (%d dias): %s", days, v.Title),
		AmountCents: s.cfg.JobBoostPriceCents,
	}, nil
}

func (s *CheckoutService) plan(ctx context.Context, code plan.Code) (*plan.Plan, error) {
	if code == "" {
		return nil, errors.FieldError("planCode", "is required")
	}
	if !code.Valid() {
		return nil, errors.NotFound("Plan")
	}
	return s.plans.GetByCode(ctx, code)
}

func nonEmpty(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
