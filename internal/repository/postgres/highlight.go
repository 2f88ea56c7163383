package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/trampo-app/trampo/internal/domain/highlight"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

// HighlightRepository implements highlight.Repository
type HighlightRepository struct {
	db *sql.DB
}

// NewHighlightRepository creates a new highlight repository
func NewHighlightRepository(db *sql.DB) highlight.Repository {
	return &HighlightRepository{db: db}
}

// Supersede closes the user's ACTIVE highlights and inserts h in one transaction
func (r *HighlightRepository) Supersede(ctx context.Context, h *highlight.Highlight, at time.Time) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	h.Status = highlight.StatusActive
	h.CreatedAt = fromUnix(at.Unix())
	ts := at.Unix()

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		// Row lock on the user serialises concurrent purchases on postgres
		if _, err := tx.ExecContext(ctx, `UPDATE users SET updated_at = updated_at WHERE id = $1`, h.UserID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE highlights SET status = $1
			WHERE user_id = $2 AND status = $3 AND ends_at <= $4
		`, string(highlight.StatusExpired), h.UserID, string(highlight.StatusActive), ts); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE highlights SET status = $1, ends_at = $4
			WHERE user_id = $2 AND status = $3 AND ends_at > $4
		`, string(highlight.StatusExpired), h.UserID, string(highlight.StatusActive), ts); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO highlights (id, user_id, plan_id, starts_at, ends_at, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, h.ID, h.UserID, h.PlanID, unix(h.StartsAt), unix(h.EndsAt), string(h.Status), ts)
		return err
	})
	if err != nil {
		return errors.DatabaseError("Failed to activate highlight", err)
	}
	return nil
}

// ListByUser returns the user's highlights, most recent first
func (r *HighlightRepository) ListByUser(ctx context.Context, userID string) ([]*highlight.Highlight, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT h.id, h.user_id, h.plan_id, h.starts_at, h.ends_at, h.status, h.created_at, `+planColumns+`
		FROM highlights h JOIN highlight_plans p ON p.id = h.plan_id
		WHERE h.user_id = $1
		ORDER BY h.starts_at DESC, h.created_at DESC
	`, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list highlights", err)
	}
	defer rows.Close()

	var out []*highlight.Highlight
	for rows.Next() {
		var h highlight.Highlight
		var p plan.Plan
		var startsAt, endsAt, createdAt int64
		if err := rows.Scan(
			&h.ID, &h.UserID, &h.PlanID, &startsAt, &endsAt, &h.Status, &createdAt,
			&p.ID, &p.Code, &p.Name, &p.PriceCents, &p.DurationDays, &p.Priority,
		); err != nil {
			return nil, errors.DatabaseError("Failed to scan highlight", err)
		}
		h.StartsAt = fromUnix(startsAt)
		h.EndsAt = fromUnix(endsAt)
		h.CreatedAt = fromUnix(createdAt)
		h.Plan = &p
		out = append(out, &h)
	}
	return out, rows.Err()
}

// CurrentPlans returns the highest-priority valid plan per user
func (r *HighlightRepository) CurrentPlans(ctx context.Context, userIDs []string, at time.Time) (map[string]*plan.Plan, error) {
	result := make(map[string]*plan.Plan, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	args := make([]interface{}, 0, len(userIDs)+2)
	args = append(args, string(highlight.StatusActive), at.Unix())
	for _, id := range userIDs {
		args = append(args, id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT h.user_id, `+planColumns+`
		FROM highlights h JOIN highlight_plans p ON p.id = h.plan_id
		WHERE h.status = $1 AND h.ends_at > $2 AND h.user_id IN (`+placeholders(3, len(userIDs))+`)
	`, args...)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load current highlights", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		var p plan.Plan
		if err := rows.Scan(&userID, &p.ID, &p.Code, &p.Name, &p.PriceCents, &p.DurationDays, &p.Priority); err != nil {
			return nil, errors.DatabaseError("Failed to scan current highlight", err)
		}
		if cur, ok := result[userID]; !ok || p.Priority > cur.Priority {
			best := p
			result[userID] = &best
		}
	}
	return result, rows.Err()
}
