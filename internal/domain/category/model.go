package category

import "context"

// Category is a kind of service offered by workers and requested by vagas
type Category struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Repository reads the seeded category list
type Repository interface {
	List(ctx context.Context) ([]*Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
}
