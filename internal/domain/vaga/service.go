package vaga

import "context"

// Input carries the editable fields of a vaga
type Input struct {
	CategoryID  *string
	Title       string
	Description string
	City        string
	State       string
	SalaryType  SalaryType
	SalaryCents *int64
	Etapas      []string
}

// Page is one page of the public posting list
type Page struct {
	Items []*Vaga
	Total int64
}

// Service defines job posting logic
type Service interface {
	Create(ctx context.Context, employerID string, in Input) (*Vaga, error)
	Get(ctx context.Context, id string) (*Vaga, error)
	Update(ctx context.Context, userID, id string, in Input) (*Vaga, error)
	SetStatus(ctx context.Context, userID, id string, status Status) (*Vaga, error)
	List(ctx context.Context, filter Filter, limit, offset int) (*Page, error)
	ListMine(ctx context.Context, employerID string) ([]*Vaga, error)
}

// CandidaturaService defines the application pipeline
type CandidaturaService interface {
	Apply(ctx context.Context, prestadorID, vagaID, message string) (*Candidatura, error)
	ListForVaga(ctx context.Context, userID, vagaID string) ([]*Candidatura, error)
	ListMine(ctx context.Context, prestadorID string) ([]*Candidatura, error)
	UpdateStatus(ctx context.Context, userID, candidaturaID string, status CandidaturaStatus) (*Candidatura, error)
}

// FavoritaService defines saved-vaga logic
type FavoritaService interface {
	Add(ctx context.Context, prestadorID, vagaID string) error
	Remove(ctx context.Context, prestadorID, vagaID string) error
	List(ctx context.Context, prestadorID string) ([]*Vaga, error)
}
