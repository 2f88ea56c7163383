package client

import "time"

// User represents an account
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // PRESTADOR or EMPREGADOR
	Phone     string    `json:"phone,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// WorkerProfile holds the PRESTADOR side of a profile
type WorkerProfile struct {
	CategoryID   *string  `json:"categoryId,omitempty"`
	Description  string   `json:"description"`
	AveragePrice *float64 `json:"averagePrice,omitempty"`
}

// EmployerProfile holds the EMPREGADOR side of a profile
type EmployerProfile struct {
	CompanyName       string   `json:"companyName"`
	AdvertisedService string   `json:"advertisedService"`
	Budget            *float64 `json:"budget,omitempty"`
}

// Profile is a user with role-specific details
type Profile struct {
	User          *User            `json:"user"`
	Worker        *WorkerProfile   `json:"worker,omitempty"`
	Employer      *EmployerProfile `json:"employer,omitempty"`
	HighlightPlan *Plan            `json:"highlightPlan,omitempty"`
}

// Plan is a purchasable highlight plan. Price is in reais.
type Plan struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DurationDays int     `json:"durationDays"`
	Priority     int     `json:"priority"`
}

// Highlight is a purchased highlight period
type Highlight struct {
	ID       string    `json:"id"`
	Plan     *Plan     `json:"plan,omitempty"`
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	Status   string    `json:"status"`
	Current  bool      `json:"current"`
}

// Etapa is a named stage of a vaga's hiring pipeline
type Etapa struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Vaga is a job posting
type Vaga struct {
	ID              string     `json:"id"`
	EmployerID      string     `json:"employerId"`
	CategoryID      *string    `json:"categoryId,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	City            string     `json:"city,omitempty"`
	State           string     `json:"state,omitempty"`
	SalaryType      string     `json:"salaryType"`
	Salary          *float64   `json:"salary,omitempty"`
	Status          string     `json:"status"`
	IsPaidAd        bool       `json:"isPaidAd"`
	PaidAdExpiresAt *time.Time `json:"paidAdExpiresAt,omitempty"`
	Boosted         bool       `json:"boosted"`
	Etapas          []Etapa    `json:"etapas,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// SearchResult is a profile matched by a search, ranked by highlight plan
type SearchResult struct {
	Profile
	Highlighted bool `json:"highlighted"`
}

// ListOptions contains common options for list operations
type ListOptions struct {
	Page     int `json:"page,omitempty"`      // Page number (1-based)
	PageSize int `json:"page_size,omitempty"` // Items per page
}

// Page is a paginated list response
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}
