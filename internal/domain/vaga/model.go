package vaga

import "time"

// Status of a job posting
type Status string

const (
	StatusAberta  Status = "ABERTA"
	StatusPausada Status = "PAUSADA"
	StatusFechada Status = "FECHADA"
)

// Valid reports whether s is a known posting status
func (s Status) Valid() bool {
	return s == StatusAberta || s == StatusPausada || s == StatusFechada
}

// SalaryType says whether a posting advertises a fixed pay
type SalaryType string

const (
	SalaryFixo      SalaryType = "FIXO"
	SalaryACombinar SalaryType = "A_COMBINAR"
)

// DefaultBoostDays is used when a boost purchase omits its duration
const DefaultBoostDays = 30

// MaxBoostDays bounds the boost duration accepted at checkout
const MaxBoostDays = 365

// DefaultEtapas are the pipeline stages given to postings created without any
var DefaultEtapas = []string{"Triagem", "Entrevista", "Proposta"}

// Vaga is a job posting owned by an employer
type Vaga struct {
	ID              string     `json:"id"`
	EmployerID      string     `json:"employerId"`
	CategoryID      *string    `json:"categoryId,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	City            string     `json:"city,omitempty"`
	State           string     `json:"state,omitempty"`
	SalaryType      SalaryType `json:"salaryType"`
	SalaryCents     *int64     `json:"salaryCents,omitempty"`
	Status          Status     `json:"status"`
	IsPaidAd        bool       `json:"isPaidAd"`
	PaidAdExpiresAt *time.Time `json:"paidAdExpiresAt,omitempty"`
	Etapas          []Etapa    `json:"etapas,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// OwnerID returns the employer who posted the vaga
func (v *Vaga) OwnerID() string {
	return v.EmployerID
}

// Boosted reports whether a paid boost is in effect at now
func (v *Vaga) Boosted(now time.Time) bool {
	return v.IsPaidAd && v.PaidAdExpiresAt != nil && v.PaidAdExpiresAt.After(now)
}

// Etapa is one ordered stage of a posting's hiring pipeline
type Etapa struct {
	ID       string `json:"id"`
	VagaID   string `json:"-"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// BoostDays normalises a requested boost duration: zero means the default
// and anything else is clamped to at least one day.
func BoostDays(requested int) int {
	if requested == 0 {
		return DefaultBoostDays
	}
	if requested < 1 {
		return 1
	}
	return requested
}

// Filter narrows the public posting list
type Filter struct {
	CategoryID string
	City       string
	State      string
	Query      string
	Status     Status
}
