package user

import "context"

// RegisterInput carries the fields accepted at sign up
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     Role
	Phone    string
	City     string
	State    string
}

// ProfileUpdate is a partial update; nil fields are left untouched. Worker
// fields are ignored for employers and employer fields for workers.
type ProfileUpdate struct {
	Name      *string
	Phone     *string
	City      *string
	State     *string
	AvatarURL *string

	CategoryID        *string
	Description       *string
	AveragePriceCents *int64

	CompanyName       *string
	AdvertisedService *string
	BudgetCents       *int64
}

// Service defines the interface for account and profile logic
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*Profile, error)

	// Authenticate checks credentials and returns the matching user
	Authenticate(ctx context.Context, email, password string) (*User, error)

	GetByID(ctx context.Context, id string) (*User, error)
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*Profile, error)
}
