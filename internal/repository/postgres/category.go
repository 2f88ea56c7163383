package postgres

import (
	"context"
	"database/sql"

	"github.com/trampo-app/trampo/internal/domain/category"
	"github.com/trampo-app/trampo/internal/pkg/errors"
)

// CategoryRepository implements category.Repository
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) category.Repository {
	return &CategoryRepository{db: db}
}

// List returns all categories by name
func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, slug, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list categories", err)
	}
	defer rows.Close()

	var out []*category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name); err != nil {
			return nil, errors.DatabaseError("Failed to scan category", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// GetByID retrieves a category
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*category.Category, error) {
	var c category.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, slug, name FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Slug, &c.Name)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Category")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get category", err)
	}
	return &c, nil
}
