package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trampo-app/trampo/internal/api/dto"
	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
	"github.com/trampo-app/trampo/internal/pkg/validator"
)

// CandidaturaHandler handles the application pipeline
type CandidaturaHandler struct {
	candidaturas vaga.CandidaturaService
	logger       *logger.Logger
	validator    *validator.Validator
}

// NewCandidaturaHandler creates a new application handler
func NewCandidaturaHandler(candidaturas vaga.CandidaturaService, log *logger.Logger, val *validator.Validator) *CandidaturaHandler {
	return &CandidaturaHandler{
		candidaturas: candidaturas,
		logger:       log,
		validator:    val,
	}
}

// Apply submits an application
// @Summary Apply to a vaga
// @Tags Candidaturas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vaga ID"
// @Param request body dto.CandidaturaRequest false "Message"
// @Success 201 {object} vaga.Candidatura
// @Failure 400 {object} utils.ErrorResponse "Vaga closed"
// @Failure 409 {object} utils.ErrorResponse "Already applied"
// @Router /vagas/{id}/candidaturas [post]
func (h *CandidaturaHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.CandidaturaRequest
	if r.ContentLength != 0 {
		if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
			utils.WriteError(w, appErr)
			return
		}
	}

	c, err := h.candidaturas.Apply(r.Context(), id, chi.URLParam(r, "id"), req.Message)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, c)
}

// ListForVaga lists applications to a vaga owned by the caller
// @Summary List applications of a vaga
// @Tags Candidaturas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vaga ID"
// @Success 200 {array} vaga.Candidatura
// @Failure 403 {object} utils.ErrorResponse "Not the owner"
// @Router /vagas/{id}/candidaturas [get]
func (h *CandidaturaHandler) ListForVaga(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	cs, err := h.candidaturas.ListForVaga(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, nonNil(cs))
}

// ListMine lists the caller's applications
// @Summary List my applications
// @Tags Candidaturas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} vaga.Candidatura
// @Router /candidaturas/mine [get]
func (h *CandidaturaHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	cs, err := h.candidaturas.ListMine(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, nonNil(cs))
}

// UpdateStatus moves an application through the pipeline
// @Summary Change application status
// @Tags Candidaturas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Candidatura ID"
// @Param request body dto.CandidaturaStatusRequest true "Status"
// @Success 200 {object} vaga.Candidatura
// @Failure 400 {object} utils.ErrorResponse "Backward move"
// @Failure 403 {object} utils.ErrorResponse "Not the owner"
// @Router /candidaturas/{id}/status [patch]
func (h *CandidaturaHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.CandidaturaStatusRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	c, err := h.candidaturas.UpdateStatus(r.Context(), id, chi.URLParam(r, "id"), vaga.CandidaturaStatus(req.Status))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, c)
}
