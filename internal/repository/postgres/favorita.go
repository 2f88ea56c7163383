package postgres

import (
	"context"
	"database/sql"

	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

// FavoritaRepository implements vaga.FavoritaRepository
type FavoritaRepository struct {
	db *sql.DB
}

// NewFavoritaRepository creates a new favorita repository
func NewFavoritaRepository(db *sql.DB) vaga.FavoritaRepository {
	return &FavoritaRepository{db: db}
}

// Add saves a vaga for a worker; saving twice is a no-op
func (r *FavoritaRepository) Add(ctx context.Context, f *vaga.Favorita) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = fromUnix(now().Unix())
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vagas_favoritas (vaga_id, prestador_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`, f.VagaID, f.PrestadorID, unix(f.CreatedAt))
	if err != nil {
		return errors.DatabaseError("Failed to save favorita", err)
	}
	return nil
}

// Remove deletes a saved vaga
func (r *FavoritaRepository) Remove(ctx context.Context, vagaID, prestadorID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM vagas_favoritas WHERE vaga_id = $1 AND prestador_id = $2`, vagaID, prestadorID)
	if err != nil {
		return errors.DatabaseError("Failed to remove favorita", err)
	}
	return expectOne(result, "Favorita")
}

// ListVagas returns the vagas a worker saved, most recently saved first
func (r *FavoritaRepository) ListVagas(ctx context.Context, prestadorID string) ([]*vaga.Vaga, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vagaColumns+`
		FROM vagas_favoritas f JOIN vagas v ON v.id = f.vaga_id
		WHERE f.prestador_id = $1
		ORDER BY f.created_at DESC
	`, prestadorID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list favoritas", err)
	}
	return collectVagas(rows)
}
