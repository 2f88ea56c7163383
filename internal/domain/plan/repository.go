package plan

import "context"

// Repository defines plan catalog persistence
type Repository interface {
	// List returns all plans ordered by priority ascending
	List(ctx context.Context) ([]*Plan, error)
	GetByID(ctx context.Context, id string) (*Plan, error)
	GetByCode(ctx context.Context, code Code) (*Plan, error)
	// Seed inserts plans that are not present yet
	Seed(ctx context.Context, plans []Plan) error
}
