package ad

import "context"

// Service exposes ad reads
type Service interface {
	ListCurrent(ctx context.Context, audience Target) ([]*Ad, error)
	ListMine(ctx context.Context, userID string) ([]*Ad, error)
}
