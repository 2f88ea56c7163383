package postgres

import (
	"context"
	"database/sql"

	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

const planColumns = `p.id, p.code, p.name, p.price_cents, p.duration_days, p.priority`

// PlanRepository implements plan.Repository
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *sql.DB) plan.Repository {
	return &PlanRepository{db: db}
}

func scanPlan(row rowScanner) (*plan.Plan, error) {
	var p plan.Plan
	if err := row.Scan(&p.ID, &p.Code, &p.Name, &p.PriceCents, &p.DurationDays, &p.Priority); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns plans ordered by priority ascending
func (r *PlanRepository) List(ctx context.Context) ([]*plan.Plan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+planColumns+` FROM highlight_plans p ORDER BY p.priority ASC`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list plans", err)
	}
	defer rows.Close()

	var plans []*plan.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan plan", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// GetByID retrieves a plan by ID
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	p, err := scanPlan(r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM highlight_plans p WHERE p.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Plan")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get plan", err)
	}
	return p, nil
}

// GetByCode retrieves a plan by code
func (r *PlanRepository) GetByCode(ctx context.Context, code plan.Code) (*plan.Plan, error) {
	p, err := scanPlan(r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM highlight_plans p WHERE p.code = $1`, string(code)))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Plan")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get plan", err)
	}
	return p, nil
}

// Seed inserts catalog plans, leaving existing rows untouched
func (r *PlanRepository) Seed(ctx context.Context, plans []plan.Plan) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, p := range plans {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO highlight_plans (id, code, name, price_cents, duration_days, priority)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT DO NOTHING
			`, p.ID, string(p.Code), p.Name, p.PriceCents, p.DurationDays, p.Priority)
			if err != nil {
				return errors.DatabaseError("Failed to seed plan "+string(p.Code), err)
			}
		}
		return nil
	})
}
