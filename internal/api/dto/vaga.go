package dto

import (
	"time"

	"github.com/trampo-app/trampo/internal/domain/vaga"
)

// VagaRequest creates or edits a vaga. Salary is in reais.
type VagaRequest struct {
	CategoryID  *string  `json:"categoryId,omitempty" validate:"omitempty,uuid"`
	Title       string   `json:"title" validate:"required,max=120"`
	Description string   `json:"description" validate:"required,max=5000"`
	City        string   `json:"city,omitempty" validate:"omitempty,max=100"`
	State       string   `json:"state,omitempty" validate:"omitempty,uf"`
	SalaryType  string   `json:"salaryType,omitempty" validate:"omitempty,oneof=FIXO A_COMBINAR"`
	Salary      *float64 `json:"salary,omitempty" validate:"omitempty,gt=0"`
	Etapas      []string `json:"etapas,omitempty" validate:"omitempty,max=10,dive,required,max=60"`
}

// ToDomain converts the request into vaga input
func (r VagaRequest) ToDomain() vaga.Input {
	return vaga.Input{
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Description: r.Description,
		City:        r.City,
		State:       r.State,
		SalaryType:  vaga.SalaryType(r.SalaryType),
		SalaryCents: ToCentsPtr(r.Salary),
		Etapas:      r.Etapas,
	}
}

// VagaStatusRequest changes a vaga's status
type VagaStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ABERTA PAUSADA FECHADA"`
}

// VagaDTO is a job posting in API responses
type VagaDTO struct {
	ID              string          `json:"id"`
	EmployerID      string          `json:"employerId"`
	CategoryID      *string         `json:"categoryId,omitempty"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	City            string          `json:"city,omitempty"`
	State           string          `json:"state,omitempty"`
	SalaryType      vaga.SalaryType `json:"salaryType"`
	Salary          *float64        `json:"salary,omitempty"`
	Status          vaga.Status     `json:"status"`
	IsPaidAd        bool            `json:"isPaidAd"`
	PaidAdExpiresAt *time.Time      `json:"paidAdExpiresAt,omitempty"`
	Boosted         bool            `json:"boosted"`
	Etapas          []vaga.Etapa    `json:"etapas,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToVagaDTO converts a vaga as seen at now
func ToVagaDTO(v *vaga.Vaga, now time.Time) *VagaDTO {
	return &VagaDTO{
		ID:              v.ID,
		EmployerID:      v.EmployerID,
		CategoryID:      v.CategoryID,
		Title:           v.Title,
		Description:     v.Description,
		City:            v.City,
		State:           v.State,
		SalaryType:      v.SalaryType,
		Salary:          ToReaisPtr(v.SalaryCents),
		Status:          v.Status,
		IsPaidAd:        v.IsPaidAd,
		PaidAdExpiresAt: v.PaidAdExpiresAt,
		Boosted:         v.Boosted(now),
		Etapas:          v.Etapas,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

// ToVagaDTOs converts a vaga list
func ToVagaDTOs(vs []*vaga.Vaga, now time.Time) []*VagaDTO {
	out := make([]*VagaDTO, 0, len(vs))
	for _, v := range vs {
		out = append(out, ToVagaDTO(v, now))
	}
	return out
}

// CandidaturaRequest applies to a vaga
type CandidaturaRequest struct {
	Message string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

// CandidaturaStatusRequest moves an application through the pipeline
type CandidaturaStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDENTE EM_AVALIACAO ENTREVISTA FINALISTA RECUSADA"`
}
