package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/trampo-app/trampo/internal/domain/payment"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

// PaymentEventRepository implements payment.EventRepository
type PaymentEventRepository struct {
	db *sql.DB
}

// NewPaymentEventRepository creates a new payment event repository
func NewPaymentEventRepository(db *sql.DB) payment.EventRepository {
	return &PaymentEventRepository{db: db}
}

// Claim records a checkout session as processing
func (r *PaymentEventRepository) Claim(ctx context.Context, e *payment.Event, staleBefore time.Time) (bool, error) {
	ts := now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = fromUnix(ts.Unix())
	}
	e.UpdatedAt = e.CreatedAt
	e.Status = payment.EventProcessing

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO payment_events (session_id, event_id, purchase_type, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING
	`, e.SessionID, e.EventID, string(e.PurchaseType), e.UserID, string(e.Status), unix(e.CreatedAt), unix(e.UpdatedAt))
	if err != nil {
		return false, errors.DatabaseError("Failed to claim payment event", err)
	}
	if n, _ := result.RowsAffected(); n == 1 {
		return true, nil
	}

	// Take over a claim abandoned by a crashed delivery
	result, err = r.db.ExecContext(ctx, `
		UPDATE payment_events SET event_id = $1, updated_at = $2
		WHERE session_id = $3 AND status = $4 AND updated_at < $5
	`, e.EventID, unix(e.UpdatedAt), e.SessionID, string(payment.EventProcessing), staleBefore.Unix())
	if err != nil {
		return false, errors.DatabaseError("Failed to reclaim payment event", err)
	}
	n, _ := result.RowsAffected()
	return n == 1, nil
}

func (r *PaymentEventRepository) setStatus(ctx context.Context, sessionID string, status payment.EventStatus, detail string, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE payment_events SET status = $1, detail = $2, updated_at = $3
		WHERE session_id = $4
	`, string(status), nullString(detail), at.Unix(), sessionID)
	if err != nil {
		return errors.DatabaseError("Failed to update payment event", err)
	}
	return expectOne(result, "Payment event")
}

// MarkFulfilled settles a claim as fulfilled
func (r *PaymentEventRepository) MarkFulfilled(ctx context.Context, sessionID, detail string, at time.Time) error {
	return r.setStatus(ctx, sessionID, payment.EventFulfilled, detail, at)
}

// MarkRejected settles a claim as rejected
func (r *PaymentEventRepository) MarkRejected(ctx context.Context, sessionID, reason string, at time.Time) error {
	return r.setStatus(ctx, sessionID, payment.EventRejected, reason, at)
}

// Release deletes an unsettled claim
func (r *PaymentEventRepository) Release(ctx context.Context, sessionID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM payment_events WHERE session_id = $1 AND status = $2`,
		sessionID, string(payment.EventProcessing))
	if err != nil {
		return errors.DatabaseError("Failed to release payment event", err)
	}
	return nil
}

// Get retrieves a payment event
func (r *PaymentEventRepository) Get(ctx context.Context, sessionID string) (*payment.Event, error) {
	var e payment.Event
	var detail sql.NullString
	var createdAt, updatedAt int64
	err := r.db.QueryRowContext(ctx, `
		SELECT session_id, event_id, purchase_type, user_id, status, detail, created_at, updated_at
		FROM payment_events WHERE session_id = $1
	`, sessionID).Scan(&e.SessionID, &e.EventID, &e.PurchaseType, &e.UserID, &e.Status, &detail, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Payment event")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get payment event", err)
	}
	e.Detail = detail.String
	e.CreatedAt = fromUnix(createdAt)
	e.UpdatedAt = fromUnix(updatedAt)
	return &e, nil
}

// PurgeBefore deletes settled events created before cutoff
func (r *PaymentEventRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM payment_events WHERE created_at < $1 AND status <> $2
	`, cutoff.Unix(), string(payment.EventProcessing))
	if err != nil {
		return 0, errors.DatabaseError("Failed to purge payment events", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
