package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

const candidaturaColumns = `c.id, c.vaga_id, c.prestador_id, c.message, c.status, c.created_at, c.updated_at`

// CandidaturaRepository implements vaga.CandidaturaRepository
type CandidaturaRepository struct {
	db *sql.DB
}

// NewCandidaturaRepository creates a new candidatura repository
func NewCandidaturaRepository(db *sql.DB) vaga.CandidaturaRepository {
	return &CandidaturaRepository{db: db}
}

func scanCandidatura(row rowScanner, extra ...interface{}) (*vaga.Candidatura, error) {
	var c vaga.Candidatura
	var createdAt, updatedAt int64
	dest := []interface{}{&c.ID, &c.VagaID, &c.PrestadorID, &c.Message, &c.Status, &createdAt, &updatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	c.CreatedAt = fromUnix(createdAt)
	c.UpdatedAt = fromUnix(updatedAt)
	return &c, nil
}

// Create inserts an application. A second application by the same worker
// to the same vaga fails with a conflict.
func (r *CandidaturaRepository) Create(ctx context.Context, c *vaga.Candidatura) error {
	ts := now()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = fromUnix(ts.Unix())
	c.UpdatedAt = c.CreatedAt

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO candidaturas (id, vaga_id, prestador_id, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.VagaID, c.PrestadorID, c.Message, string(c.Status), ts.Unix(), ts.Unix())
	if isUniqueViolation(err) {
		return errors.Conflict("You have already applied to this vaga")
	}
	if err != nil {
		return errors.DatabaseError("Failed to create candidatura", err)
	}
	return nil
}

// GetByID retrieves an application
func (r *CandidaturaRepository) GetByID(ctx context.Context, id string) (*vaga.Candidatura, error) {
	c, err := scanCandidatura(r.db.QueryRowContext(ctx,
		`SELECT `+candidaturaColumns+` FROM candidaturas c WHERE c.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Candidatura")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get candidatura", err)
	}
	return c, nil
}

// Exists reports whether the worker already applied to the vaga
func (r *CandidaturaRepository) Exists(ctx context.Context, vagaID, prestadorID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidaturas WHERE vaga_id = $1 AND prestador_id = $2`,
		vagaID, prestadorID,
	).Scan(&n)
	if err != nil {
		return false, errors.DatabaseError("Failed to check candidatura", err)
	}
	return n > 0, nil
}

// ListByVaga returns applications to a vaga with applicant names, oldest first
func (r *CandidaturaRepository) ListByVaga(ctx context.Context, vagaID string) ([]*vaga.Candidatura, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+candidaturaColumns+`, u.name
		FROM candidaturas c JOIN users u ON u.id = c.prestador_id
		WHERE c.vaga_id = $1
		ORDER BY c.created_at ASC
	`, vagaID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list candidaturas", err)
	}
	defer rows.Close()

	var out []*vaga.Candidatura
	for rows.Next() {
		var name string
		c, err := scanCandidatura(rows, &name)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan candidatura", err)
		}
		c.PrestadorName = name
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListByPrestador returns a worker's applications with vaga titles, newest first
func (r *CandidaturaRepository) ListByPrestador(ctx context.Context, prestadorID string) ([]*vaga.Candidatura, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+candidaturaColumns+`, v.title
		FROM candidaturas c JOIN vagas v ON v.id = c.vaga_id
		WHERE c.prestador_id = $1
		ORDER BY c.created_at DESC
	`, prestadorID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list candidaturas", err)
	}
	defer rows.Close()

	var out []*vaga.Candidatura
	for rows.Next() {
		var title string
		c, err := scanCandidatura(rows, &title)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan candidatura", err)
		}
		c.VagaTitle = title
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateStatus moves an application to a new status
func (r *CandidaturaRepository) UpdateStatus(ctx context.Context, id string, status vaga.CandidaturaStatus, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE candidaturas SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), at.Unix(), id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update candidatura", err)
	}
	return expectOne(result, "Candidatura")
}
