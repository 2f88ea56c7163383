package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

// TokenRepository implements user.TokenRepository
type TokenRepository struct {
	db *sql.DB
}

// NewTokenRepository creates a new refresh token repository
func NewTokenRepository(db *sql.DB) user.TokenRepository {
	return &TokenRepository{db: db}
}

// Store saves a refresh token hash
func (r *TokenRepository) Store(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO refresh_tokens (token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
	`, tokenHash, userID, unix(expiresAt), unix(now()))
	if err != nil {
		return errors.DatabaseError("Failed to store refresh token", err)
	}
	return nil
}

// Consume deletes a valid refresh token and returns its owner
func (r *TokenRepository) Consume(ctx context.Context, tokenHash string, at time.Time) (string, error) {
	var userID string
	var expiresAt int64

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`SELECT user_id, expires_at FROM refresh_tokens WHERE token_hash = $1`, tokenHash,
		).Scan(&userID, &expiresAt)
		if err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash)
		if err != nil {
			return err
		}
		// A concurrent refresh already used this token
		if n, _ := result.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err == sql.ErrNoRows {
		return "", errors.NotFound("Refresh token")
	}
	if err != nil {
		return "", errors.DatabaseError("Failed to consume refresh token", err)
	}
	if expiresAt <= at.Unix() {
		return "", errors.NotFound("Refresh token")
	}
	return userID, nil
}

// Revoke deletes a refresh token hash. Unknown tokens are ignored.
func (r *TokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, tokenHash); err != nil {
		return errors.DatabaseError("Failed to revoke refresh token", err)
	}
	return nil
}
