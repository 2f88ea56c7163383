package user

import "time"

// Role distinguishes the two sides of the marketplace
type Role string

// User roles
const (
	RolePrestador  Role = "PRESTADOR"
	RoleEmpregador Role = "EMPREGADOR"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RolePrestador || r == RoleEmpregador
}

// User represents an account on either side of the marketplace
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WorkerProfile holds the service offer of a PRESTADOR
type WorkerProfile struct {
	UserID            string  `json:"-"`
	CategoryID        *string `json:"categoryId,omitempty"`
	Description       string  `json:"description"`
	AveragePriceCents *int64  `json:"averagePriceCents,omitempty"`
}

// EmployerProfile holds the demand side of an EMPREGADOR
type EmployerProfile struct {
	UserID            string `json:"-"`
	CompanyName       string `json:"companyName"`
	AdvertisedService string `json:"advertisedService"`
	BudgetCents       *int64 `json:"budgetCents,omitempty"`
}

// Profile is a user together with its role-specific profile. Exactly one of
// Worker and Employer is set, matching the user's role.
type Profile struct {
	User     *User            `json:"user"`
	Worker   *WorkerProfile   `json:"worker,omitempty"`
	Employer *EmployerProfile `json:"employer,omitempty"`
}

// SearchFilter narrows a marketplace search
type SearchFilter struct {
	Role       Role
	CategoryID string
	Query      string
	City       string
	State      string
	Limit      int
}

// SearchRow is one raw search hit before ranking. PriceCents is the worker's
// average price or the employer's budget.
type SearchRow struct {
	Profile
	PriceCents *int64
}
