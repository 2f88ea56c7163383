package vaga

import "time"

// CandidaturaStatus is a stage of the application pipeline
type CandidaturaStatus string

const (
	CandidaturaPendente    CandidaturaStatus = "PENDENTE"
	CandidaturaEmAvaliacao CandidaturaStatus = "EM_AVALIACAO"
	CandidaturaEntrevista  CandidaturaStatus = "ENTREVISTA"
	CandidaturaFinalista   CandidaturaStatus = "FINALISTA"
	CandidaturaRecusada    CandidaturaStatus = "RECUSADA"
)

var pipelineOrder = map[CandidaturaStatus]int{
	CandidaturaPendente:    0,
	CandidaturaEmAvaliacao: 1,
	CandidaturaEntrevista:  2,
	CandidaturaFinalista:   3,
}

// Valid reports whether s is a known status
func (s CandidaturaStatus) Valid() bool {
	_, ok := pipelineOrder[s]
	return ok || s == CandidaturaRecusada
}

// CanMoveTo reports whether an application may go from s to next.
// Applications only move forward; RECUSADA is reachable from any open stage
// and is terminal.
func (s CandidaturaStatus) CanMoveTo(next CandidaturaStatus) bool {
	if s == CandidaturaRecusada || !next.Valid() {
		return false
	}
	if next == CandidaturaRecusada {
		return true
	}
	return pipelineOrder[next] > pipelineOrder[s]
}

// Candidatura is a worker's application to a vaga
type Candidatura struct {
	ID          string            `json:"id"`
	VagaID      string            `json:"vagaId"`
	PrestadorID string            `json:"prestadorId"`
	Message     string            `json:"message,omitempty"`
	Status      CandidaturaStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	// Populated on listings
	PrestadorName string `json:"prestadorName,omitempty"`
	VagaTitle     string `json:"vagaTitle,omitempty"`
}

// Favorita marks a vaga saved by a worker
type Favorita struct {
	VagaID      string    `json:"vagaId"`
	PrestadorID string    `json:"prestadorId"`
	CreatedAt   time.Time `json:"createdAt"`
}
