package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/metrics"
)

// claimTimeout is how long a delivery may hold a session before a
// redelivery is allowed to take it over
const claimTimeout = 10 * time.Minute

// WebhookService implements payment.WebhookService
type WebhookService struct {
	gateway    payment.Gateway
	events     payment.EventRepository
	fulfillers map[payment.PurchaseType]payment.Fulfiller
	notifier   *Notifier
	logger     *logger.Logger
	now        func() time.Time
}

// NewWebhookService creates a new webhook service. gateway may be nil when
// payments are not configured.
func NewWebhookService(
	gateway payment.Gateway,
	events payment.EventRepository,
	fulfillers map[payment.PurchaseType]payment.Fulfiller,
	notifier *Notifier,
	log *logger.Logger,
) payment.WebhookService {
	return &WebhookService{
		gateway:    gateway,
		events:     events,
		fulfillers: fulfillers,
		notifier:   notifier,
		logger:     log,
		now:        time.Now,
	}
}

// HandleWebhook verifies and applies one provider delivery. A nil error means
// the delivery must be acknowledged; an error makes the provider redeliver.
func (s *WebhookService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*payment.WebhookResult, error) {
	if s.gateway == nil {
		return nil, errors.NotConfigured("Payment webhook")
	}

	event, err := s.gateway.ParseWebhook(payload, signature)
	switch {
	case stderrors.Is(err, payment.ErrNotConfigured):
		return nil, errors.NotConfigured("Payment webhook")
	case stderrors.Is(err, payment.ErrInvalidSignature):
		metrics.RecordWebhook("", "invalid_signature")
		return nil, errors.InvalidSignature(err)
	case err != nil:
		return nil, errors.BadRequest("Malformed webhook payload")
	}

	log := s.logger.Ctx(ctx).WithFields(map[string]interface{}{
		"event_id":   event.ID,
		"event_type": event.Type,
	})

	if event.Type != payment.EventCheckoutCompleted {
		return s.done(log, "", payment.OutcomeIgnored, nil), nil
	}
	checkout := event.Checkout
	log = log.With("session_id", checkout.SessionID)

	if !checkout.Paid() {
		log.With("payment_status", checkout.PaymentStatus).Info("Checkout completed without payment, ignoring")
		return s.done(log, "", payment.OutcomeUnpaid, nil), nil
	}

	purchase, err := payment.ParseMetadata(checkout.Metadata)
	if err != nil {
		// Redelivery cannot fix a malformed bag, so the event is acknowledged
		log.WithError(err).Error("Dropping checkout with invalid metadata")
		return s.done(log, "", payment.OutcomeInvalidMetadata, nil), nil
	}
	kind := string(purchase.Type())
	log = log.WithFields(map[string]interface{}{
		"purchase_type": kind,
		"user_id":       purchase.Buyer(),
	})

	fulfiller, ok := s.fulfillers[purchase.Type()]
	if !ok {
		return nil, errors.Internal("No fulfiller for purchase type "+kind, nil)
	}

	now := s.now()
	claimed, err := s.events.Claim(ctx, &payment.Event{
		SessionID:    checkout.SessionID,
		EventID:      event.ID,
		PurchaseType: purchase.Type(),
		UserID:       purchase.Buyer(),
	}, now.Add(-claimTimeout))
	if err != nil {
		log.ErrorWithErr(err, "Failed to claim checkout session")
		return nil, err
	}
	if !claimed {
		log.Info("Checkout session already processed, skipping")
		return s.done(log, kind, payment.OutcomeDuplicate, nil), nil
	}

	mutation, err := fulfiller.Fulfil(ctx, purchase, now)
	if stderrors.Is(err, payment.ErrRejected) {
		log.WithError(err).Warn("Purchase rejected, acknowledging without changes")
		if markErr := s.events.MarkRejected(ctx, checkout.SessionID, err.Error(), s.now()); markErr != nil {
			log.ErrorWithErr(markErr, "Failed to record rejected checkout")
		}
		return s.done(log, kind, payment.OutcomeRejected, nil), nil
	}
	if err != nil {
		log.ErrorWithErr(err, "Fulfillment failed, releasing claim for redelivery")
		if relErr := s.events.Release(context.WithoutCancel(ctx), checkout.SessionID); relErr != nil {
			log.ErrorWithErr(relErr, "Failed to release checkout claim")
		}
		metrics.RecordWebhook(kind, "failed")
		// Always a 5xx so Stripe redelivers, whatever status the cause carries
		return nil, errors.Internal("Fulfillment failed", err)
	}

	if err := s.events.MarkFulfilled(ctx, checkout.SessionID, mutation.RecordID, s.now()); err != nil {
		// The ledger already changed; a stale claim is taken over later and
		// only risks a second mutation after claimTimeout
		log.ErrorWithErr(err, "Failed to mark checkout session fulfilled")
	}

	log.WithFields(map[string]interface{}{
		"record_id": mutation.RecordID,
		"ends_at":   mutation.EndsAt,
	}).Info("Purchase fulfilled")

	if s.notifier != nil {
		s.notifier.PurchaseConfirmed(ctx, mutation)
	}
	return s.done(log, kind, payment.OutcomeFulfilled, mutation), nil
}

func (s *WebhookService) done(log *logger.Logger, kind, outcome string, m *payment.LedgerMutation) *payment.WebhookResult {
	metrics.RecordWebhook(kind, outcome)
	log.With("outcome", outcome).Debug("Webhook acknowledged")
	return &payment.WebhookResult{Outcome: outcome, Mutation: m}
}
