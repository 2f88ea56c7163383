package dto

import (
	"time"

	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/domain/user"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	Role      user.Role `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// WorkerProfileDTO is the service offer of a worker
type WorkerProfileDTO struct {
	CategoryID   *string  `json:"categoryId,omitempty"`
	Description  string   `json:"description"`
	AveragePrice *float64 `json:"averagePrice,omitempty"`
}

// EmployerProfileDTO is the demand side of an employer
type EmployerProfileDTO struct {
	CompanyName       string   `json:"companyName"`
	AdvertisedService string   `json:"advertisedService"`
	Budget            *float64 `json:"budget,omitempty"`
}

// ProfileDTO is a user with its role profile and current highlight
type ProfileDTO struct {
	User          *UserDTO            `json:"user"`
	Worker        *WorkerProfileDTO   `json:"worker,omitempty"`
	Employer      *EmployerProfileDTO `json:"employer,omitempty"`
	HighlightPlan *PlanDTO            `json:"highlightPlan,omitempty"`
}

// UpdateProfileRequest is a partial profile update. Worker fields are
// ignored for employers and employer fields for workers.
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	City      *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State     *string `json:"state,omitempty" validate:"omitempty,uf"`
	AvatarURL *string `json:"avatarUrl,omitempty" validate:"omitempty,url"`

	CategoryID   *string  `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	AveragePrice *float64 `json:"averagePrice,omitempty" validate:"omitempty,gte=0"`

	CompanyName       *string  `json:"companyName,omitempty" validate:"omitempty,max=120"`
	AdvertisedService *string  `json:"advertisedService,omitempty" validate:"omitempty,max=2000"`
	Budget            *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
}

// ToDomain converts the request into a profile update
func (r UpdateProfileRequest) ToDomain() user.ProfileUpdate {
	return user.ProfileUpdate{
		Name:              r.Name,
		Phone:             r.Phone,
		City:              r.City,
		State:             r.State,
		AvatarURL:         r.AvatarURL,
		CategoryID:        r.CategoryID,
		Description:       r.Description,
		AveragePriceCents: ToCentsPtr(r.AveragePrice),
		CompanyName:       r.CompanyName,
		AdvertisedService: r.AdvertisedService,
		BudgetCents:       ToCentsPtr(r.Budget),
	}
}

// ToUserDTO converts a domain user to its API representation
func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Phone:     u.Phone,
		City:      u.City,
		State:     u.State,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// ToProfileDTO converts a profile and its current plan
func ToProfileDTO(p *user.Profile, current *plan.Plan) *ProfileDTO {
	out := &ProfileDTO{User: ToUserDTO(p.User)}
	if p.Worker != nil {
		out.Worker = &WorkerProfileDTO{
			CategoryID:   p.Worker.CategoryID,
			Description:  p.Worker.Description,
			AveragePrice: ToReaisPtr(p.Worker.AveragePriceCents),
		}
	}
	if p.Employer != nil {
		out.Employer = &EmployerProfileDTO{
			CompanyName:       p.Employer.CompanyName,
			AdvertisedService: p.Employer.AdvertisedService,
			Budget:            ToReaisPtr(p.Employer.BudgetCents),
		}
	}
	if current != nil {
		out.HighlightPlan = ToPlanDTO(current)
	}
	return out
}

// ToPublicProfileDTO is ToProfileDTO without the email address
func ToPublicProfileDTO(p *user.Profile, current *plan.Plan) *ProfileDTO {
	out := ToProfileDTO(p, current)
	out.User.Email = ""
	return out
}
