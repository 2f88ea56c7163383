package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/trampo-app/trampo/internal/domain/ad"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

const adColumns = `id, user_id, plan_id, title, content, image_url, target, starts_at, ends_at, status, created_at`

// AdRepository implements ad.Repository
type AdRepository struct {
	db *sql.DB
}

// NewAdRepository creates a new ad repository
func NewAdRepository(db *sql.DB) ad.Repository {
	return &AdRepository{db: db}
}

func scanAd(row rowScanner) (*ad.Ad, error) {
	var a ad.Ad
	var image sql.NullString
	var startsAt, endsAt, createdAt int64
	if err := row.Scan(
		&a.ID, &a.UserID, &a.PlanID, &a.Title, &a.Content, &image, &a.Target,
		&startsAt, &endsAt, &a.Status, &createdAt,
	); err != nil {
		return nil, err
	}
	a.ImageURL = image.String
	a.StartsAt = fromUnix(startsAt)
	a.EndsAt = fromUnix(endsAt)
	a.CreatedAt = fromUnix(createdAt)
	return &a, nil
}

// ExpireElapsed marks the owner's elapsed ACTIVE ads as EXPIRED
func (r *AdRepository) ExpireElapsed(ctx context.Context, userID string, at time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE ads SET status = $1
		WHERE user_id = $2 AND status = $3 AND ends_at <= $4
	`, string(ad.StatusExpired), userID, string(ad.StatusActive), at.Unix())
	if err != nil {
		return 0, errors.DatabaseError("Failed to expire ads", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// Create inserts an ad
func (r *AdRepository) Create(ctx context.Context, a *ad.Ad) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = fromUnix(now().Unix())
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ads (`+adColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		a.ID, a.UserID, a.PlanID, a.Title, a.Content, nullString(a.ImageURL), string(a.Target),
		unix(a.StartsAt), unix(a.EndsAt), string(a.Status), unix(a.CreatedAt),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create ad", err)
	}
	return nil
}

// ListCurrent returns ads on display for the audience
func (r *AdRepository) ListCurrent(ctx context.Context, audience ad.Target, at time.Time, limit int) ([]*ad.Ad, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+adColumns+` FROM ads
		WHERE status = $1 AND ends_at > $2 AND target IN ($3, $4)
		ORDER BY starts_at DESC
		LIMIT $5
	`, string(ad.StatusActive), at.Unix(), string(ad.TargetAll), string(audience), limit)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list ads", err)
	}
	return collectAds(rows)
}

// ListByOwner returns the owner's ads, newest first
func (r *AdRepository) ListByOwner(ctx context.Context, userID string) ([]*ad.Ad, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+adColumns+` FROM ads WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list ads", err)
	}
	return collectAds(rows)
}

func collectAds(rows *sql.Rows) ([]*ad.Ad, error) {
	defer rows.Close()
	var out []*ad.Ad
	for rows.Next() {
		a, err := scanAd(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan ad", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
