package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/trampo-app/trampo/internal/api/dto"
	"github.com/trampo-app/trampo/internal/domain/vaga"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
	"github.com/trampo-app/trampo/internal/pkg/validator"
)

// VagaHandler handles job posting requests
type VagaHandler struct {
	vagas     vaga.Service
	favoritas vaga.FavoritaService
	logger    *logger.Logger
	validator *validator.Validator
	now       func() time.Time
}

// NewVagaHandler creates a new vaga handler
func NewVagaHandler(vagas vaga.Service, favoritas vaga.FavoritaService, log *logger.Logger, val *validator.Validator) *VagaHandler {
	return &VagaHandler{
		vagas:     vagas,
		favoritas: favoritas,
		logger:    log,
		validator: val,
		now:       time.Now,
	}
}

// List returns open vagas, boosted first
// @Summary List vagas
// @Tags Vagas
// @Produce json
// @Param categoryId query string false "Category ID"
// @Param city query string false "City"
// @Param state query string false "State (UF)"
// @Param q query string false "Free text"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} utils.PaginatedResponse
// @Router /vagas [get]
func (h *VagaHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := utils.ParsePaginationParams(r)

	page, err := h.vagas.List(r.Context(), vaga.Filter{
		CategoryID: q.Get("categoryId"),
		City:       q.Get("city"),
		State:      strings.ToUpper(q.Get("state")),
		Query:      q.Get("q"),
	}, params.PageSize, params.Offset)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(
		dto.ToVagaDTOs(page.Items, h.now()), params.Page, params.PageSize, page.Total))
}

// Create publishes a vaga
// @Summary Create a vaga
// @Tags Vagas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VagaRequest true "Vaga"
// @Success 201 {object} dto.VagaDTO
// @Failure 400 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse "Not an employer"
// @Router /vagas [post]
func (h *VagaHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.VagaRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	v, err := h.vagas.Create(r.Context(), id, req.ToDomain())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, dto.ToVagaDTO(v, h.now()))
}

// Get returns a vaga with its etapas
// @Summary Get a vaga
// @Tags Vagas
// @Produce json
// @Param id path string true "Vaga ID"
// @Success 200 {object} dto.VagaDTO
// @Failure 404 {object} utils.ErrorResponse
// @Router /vagas/{id} [get]
func (h *VagaHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.vagas.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ToVagaDTO(v, h.now()))
}

// Update edits a vaga owned by the caller
// @Summary Update a vaga
// @Tags Vagas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vaga ID"
// @Param request body dto.VagaRequest true "Vaga"
// @Success 200 {object} dto.VagaDTO
// @Failure 403 {object} utils.ErrorResponse "Not the owner"
// @Router /vagas/{id} [put]
func (h *VagaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.VagaRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	v, err := h.vagas.Update(r.Context(), id, chi.URLParam(r, "id"), req.ToDomain())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ToVagaDTO(v, h.now()))
}

// SetStatus opens, pauses or closes a vaga
// @Summary Change vaga status
// @Tags Vagas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Vaga ID"
// @Param request body dto.VagaStatusRequest true "Status"
// @Success 200 {object} dto.VagaDTO
// @Failure 403 {object} utils.ErrorResponse "Not the owner"
// @Router /vagas/{id}/status [patch]
func (h *VagaHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.VagaStatusRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	v, err := h.vagas.SetStatus(r.Context(), id, chi.URLParam(r, "id"), vaga.Status(req.Status))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ToVagaDTO(v, h.now()))
}

// ListMine returns the caller's vagas
// @Summary List my vagas
// @Tags Vagas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.VagaDTO
// @Router /vagas/mine [get]
func (h *VagaHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	vs, err := h.vagas.ListMine(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ToVagaDTOs(vs, h.now()))
}

// AddFavorita saves a vaga
// @Summary Favorite a vaga
// @Tags Favoritas
// @Security BearerAuth
// @Param id path string true "Vaga ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /vagas/{id}/favorita [post]
func (h *VagaHandler) AddFavorita(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	if err := h.favoritas.Add(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavorita forgets a saved vaga
// @Summary Unfavorite a vaga
// @Tags Favoritas
// @Security BearerAuth
// @Param id path string true "Vaga ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /vagas/{id}/favorita [delete]
func (h *VagaHandler) RemoveFavorita(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	if err := h.favoritas.Remove(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListFavoritas returns the caller's saved vagas
// @Summary List favorite vagas
// @Tags Favoritas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.VagaDTO
// @Router /favoritas [get]
func (h *VagaHandler) ListFavoritas(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	vs, err := h.favoritas.List(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ToVagaDTOs(vs, h.now()))
}
