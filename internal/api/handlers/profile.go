package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trampo-app/trampo/internal/api/dto"
	"github.com/trampo-app/trampo/internal/domain/highlight"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
	"github.com/trampo-app/trampo/internal/pkg/validator"
)

// ProfileHandler handles profile requests
type ProfileHandler struct {
	users      user.Service
	highlights highlight.Service
	logger     *logger.Logger
	validator  *validator.Validator
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(users user.Service, highlights highlight.Service, log *logger.Logger, val *validator.Validator) *ProfileHandler {
	return &ProfileHandler{
		users:      users,
		highlights: highlights,
		logger:     log,
		validator:  val,
	}
}

// GetMe returns the caller's profile
// @Summary Get my profile
// @Tags Profiles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileDTO
// @Failure 401 {object} utils.ErrorResponse
// @Router /profiles/me [get]
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	h.writeProfile(w, r, id, false)
}

// UpdateMe edits the caller's profile
// @Summary Update my profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Fields to change"
// @Success 200 {object} dto.ProfileDTO
// @Failure 400 {object} utils.ErrorResponse
// @Router /profiles/me [put]
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if appErr := decodeAndValidate(r, h.validator, &req); appErr != nil {
		utils.WriteError(w, appErr)
		return
	}

	if _, err := h.users.UpdateProfile(r.Context(), id, req.ToDomain()); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	h.writeProfile(w, r, id, false)
}

// GetPublic returns another user's public profile
// @Summary Get a public profile
// @Tags Profiles
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.ProfileDTO
// @Failure 404 {object} utils.ErrorResponse
// @Router /users/{id} [get]
func (h *ProfileHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, r, chi.URLParam(r, "id"), true)
}

func (h *ProfileHandler) writeProfile(w http.ResponseWriter, r *http.Request, id string, public bool) {
	p, err := h.users.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	current, err := h.highlights.CurrentPlan(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if public {
		utils.WriteSuccess(w, http.StatusOK, dto.ToPublicProfileDTO(p, current))
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ToProfileDTO(p, current))
}
