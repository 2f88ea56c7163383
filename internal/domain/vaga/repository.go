package vaga

import (
	"context"
	"time"
)

// Repository defines job posting persistence
type Repository interface {
	// Create inserts the vaga and its etapas
	Create(ctx context.Context, v *Vaga) error
	// GetByID returns the vaga with its etapas in order
	GetByID(ctx context.Context, id string) (*Vaga, error)
	// Update rewrites the editable fields and replaces the etapas
	Update(ctx context.Context, v *Vaga) error
	UpdateStatus(ctx context.Context, id string, status Status, now time.Time) error
	// List returns vagas matching filter, unexpired boosts first then newest
	List(ctx context.Context, filter Filter, now time.Time, limit, offset int) ([]*Vaga, int64, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*Vaga, error)
	// MarkBoosted flags the vaga as a paid ad until expiresAt
	MarkBoosted(ctx context.Context, id string, expiresAt, now time.Time) error
}

// CandidaturaRepository defines application persistence
type CandidaturaRepository interface {
	// Create fails with a conflict error when the worker already applied
	Create(ctx context.Context, c *Candidatura) error
	GetByID(ctx context.Context, id string) (*Candidatura, error)
	Exists(ctx context.Context, vagaID, prestadorID string) (bool, error)
	ListByVaga(ctx context.Context, vagaID string) ([]*Candidatura, error)
	ListByPrestador(ctx context.Context, prestadorID string) ([]*Candidatura, error)
	UpdateStatus(ctx context.Context, id string, status CandidaturaStatus, now time.Time) error
}

// FavoritaRepository defines saved-vaga persistence
type FavoritaRepository interface {
	// Add is a no-op when the vaga is already a favorite
	Add(ctx context.Context, f *Favorita) error
	Remove(ctx context.Context, vagaID, prestadorID string) error
	ListVagas(ctx context.Context, prestadorID string) ([]*Vaga, error)
}
