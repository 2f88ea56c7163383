package user

import (
	"context"
	"time"
)

// Repository defines the interface for user data access
type Repository interface {
	// Create inserts the user and its empty role-specific profile
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error

	GetWorkerProfile(ctx context.Context, userID string) (*WorkerProfile, error)
	UpdateWorkerProfile(ctx context.Context, profile *WorkerProfile) error
	GetEmployerProfile(ctx context.Context, userID string) (*EmployerProfile, error)
	UpdateEmployerProfile(ctx context.Context, profile *EmployerProfile) error

	// Search returns users matching the filter in database order
	Search(ctx context.Context, filter SearchFilter) ([]*SearchRow, error)
}

// TokenRepository stores hashes of issued refresh tokens
type TokenRepository interface {
	Store(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	// Consume deletes the token and returns its owner. It fails with a not
	// found error when the token is unknown or expired.
	Consume(ctx context.Context, tokenHash string, now time.Time) (string, error)
	Revoke(ctx context.Context, tokenHash string) error
}
