package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

const vagaColumns = `v.id, v.employer_id, v.category_id, v.title, v.description, v.city, v.state,
	v.salary_type, v.salary_cents, v.status, v.is_paid_ad, v.paid_ad_expires_at, v.created_at, v.updated_at`

// VagaRepository implements vaga.Repository
type VagaRepository struct {
	db *sql.DB
}

// NewVagaRepository creates a new vaga repository
func NewVagaRepository(db *sql.DB) vaga.Repository {
	return &VagaRepository{db: db}
}

func scanVaga(row rowScanner) (*vaga.Vaga, error) {
	var v vaga.Vaga
	var categoryID, city, state sql.NullString
	var salary, paidUntil sql.NullInt64
	var createdAt, updatedAt int64

	if err := row.Scan(
		&v.ID, &v.EmployerID, &categoryID, &v.Title, &v.Description, &city, &state,
		&v.SalaryType, &salary, &v.Status, &v.IsPaidAd, &paidUntil, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	v.CategoryID = stringPtr(categoryID)
	v.City = city.String
	v.State = state.String
	v.SalaryCents = intPtr(salary)
	v.PaidAdExpiresAt = timePtr(paidUntil)
	v.CreatedAt = fromUnix(createdAt)
	v.UpdatedAt = fromUnix(updatedAt)
	return &v, nil
}

func collectVagas(rows *sql.Rows) ([]*vaga.Vaga, error) {
	defer rows.Close()
	var out []*vaga.Vaga
	for rows.Next() {
		v, err := scanVaga(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan vaga", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func optionalString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return nullString(*p)
}

// Create inserts a vaga with its etapas
func (r *VagaRepository) Create(ctx context.Context, v *vaga.Vaga) error {
	ts := now()
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	v.CreatedAt = fromUnix(ts.Unix())
	v.UpdatedAt = v.CreatedAt

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vagas (id, employer_id, category_id, title, description, city, state,
				salary_type, salary_cents, status, is_paid_ad, paid_ad_expires_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`,
			v.ID, v.EmployerID, optionalString(v.CategoryID), v.Title, v.Description,
			nullString(v.City), nullString(v.State), string(v.SalaryType), nullInt(v.SalaryCents),
			string(v.Status), v.IsPaidAd, nullUnix(v.PaidAdExpiresAt), ts.Unix(), ts.Unix(),
		)
		if err != nil {
			return err
		}
		return insertEtapas(ctx, tx, v)
	})
	if err != nil {
		return errors.DatabaseError("Failed to create vaga", err)
	}
	return nil
}

func insertEtapas(ctx context.Context, tx *sql.Tx, v *vaga.Vaga) error {
	for i := range v.Etapas {
		e := &v.Etapas[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.VagaID = v.ID
		e.Position = i + 1
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO etapas (id, vaga_id, name, position) VALUES ($1, $2, $3, $4)`,
			e.ID, e.VagaID, e.Name, e.Position,
		); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a vaga with its etapas
func (r *VagaRepository) GetByID(ctx context.Context, id string) (*vaga.Vaga, error) {
	v, err := scanVaga(r.db.QueryRowContext(ctx, `SELECT `+vagaColumns+` FROM vagas v WHERE v.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Vaga")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get vaga", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, vaga_id, name, position FROM etapas WHERE vaga_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load etapas", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e vaga.Etapa
		if err := rows.Scan(&e.ID, &e.VagaID, &e.Name, &e.Position); err != nil {
			return nil, errors.DatabaseError("Failed to scan etapa", err)
		}
		v.Etapas = append(v.Etapas, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to load etapas", err)
	}
	return v, nil
}

// Update rewrites the editable fields and replaces the etapas
func (r *VagaRepository) Update(ctx context.Context, v *vaga.Vaga) error {
	ts := now()
	v.UpdatedAt = fromUnix(ts.Unix())

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE vagas
			SET category_id = $1, title = $2, description = $3, city = $4, state = $5,
				salary_type = $6, salary_cents = $7, updated_at = $8
			WHERE id = $9
		`,
			optionalString(v.CategoryID), v.Title, v.Description, nullString(v.City), nullString(v.State),
			string(v.SalaryType), nullInt(v.SalaryCents), ts.Unix(), v.ID,
		)
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM etapas WHERE vaga_id = $1`, v.ID); err != nil {
			return err
		}
		return insertEtapas(ctx, tx, v)
	})
	if err == sql.ErrNoRows {
		return errors.NotFound("Vaga")
	}
	if err != nil {
		return errors.DatabaseError("Failed to update vaga", err)
	}
	return nil
}

// UpdateStatus changes the posting status
func (r *VagaRepository) UpdateStatus(ctx context.Context, id string, status vaga.Status, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE vagas SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), at.Unix(), id,
	)
	if err != nil {
		return errors.DatabaseError("Failed to update vaga status", err)
	}
	return expectOne(result, "Vaga")
}

func vagaFilter(f vaga.Filter) *whereBuilder {
	w := &whereBuilder{}
	if f.Status != "" {
		w.add("v.status = " + w.arg(string(f.Status)))
	}
	if f.CategoryID != "" {
		w.add("v.category_id = " + w.arg(f.CategoryID))
	}
	if f.City != "" {
		w.add("LOWER(v.city) = " + w.arg(strings.ToLower(strings.TrimSpace(f.City))))
	}
	if f.State != "" {
		w.add("UPPER(v.state) = " + w.arg(strings.ToUpper(strings.TrimSpace(f.State))))
	}
	if f.Query != "" {
		p := w.arg(likePattern(f.Query))
		w.add(likeAny(p, "v.title", "v.description"))
	}
	return w
}

// List returns a page of vagas, unexpired boosts first
func (r *VagaRepository) List(ctx context.Context, f vaga.Filter, at time.Time, limit, offset int) ([]*vaga.Vaga, int64, error) {
	w := vagaFilter(f)

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vagas v`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count vagas", err)
	}

	where := w.sql()
	nowArg := w.arg(at.Unix())
	query := `SELECT ` + vagaColumns + ` FROM vagas v` + where + `
		ORDER BY CASE WHEN v.is_paid_ad AND v.paid_ad_expires_at > ` + nowArg + ` THEN 0 ELSE 1 END,
			v.created_at DESC, v.id
		LIMIT ` + w.arg(limit) + ` OFFSET ` + w.arg(offset)

	rows, err := r.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list vagas", err)
	}
	vagas, err := collectVagas(rows)
	if err != nil {
		return nil, 0, err
	}
	return vagas, total, nil
}

// ListByEmployer returns the employer's vagas, newest first
func (r *VagaRepository) ListByEmployer(ctx context.Context, employerID string) ([]*vaga.Vaga, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+vagaColumns+` FROM vagas v WHERE v.employer_id = $1 ORDER BY v.created_at DESC`, employerID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list vagas", err)
	}
	return collectVagas(rows)
}

// MarkBoosted flags the vaga as a paid ad until expiresAt
func (r *VagaRepository) MarkBoosted(ctx context.Context, id string, expiresAt, at time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE vagas SET is_paid_ad = $1, paid_ad_expires_at = $2, updated_at = $3
		WHERE id = $4
	`, true, expiresAt.Unix(), at.Unix(), id)
	if err != nil {
		return errors.DatabaseError("Failed to boost vaga", err)
	}
	return expectOne(result, "Vaga")
}
