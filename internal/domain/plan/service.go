package plan

import "context"

// Service exposes the read-mostly plan catalog
type Service interface {
	List(ctx context.Context) ([]*Plan, error)
	GetByCode(ctx context.Context, code Code) (*Plan, error)
	GetByID(ctx context.Context, id string) (*Plan, error)
	Seed(ctx context.Context) error
}
