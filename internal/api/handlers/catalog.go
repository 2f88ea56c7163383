package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/trampo-app/trampo/internal/api/dto"
	"github.com/trampo-app/trampo/internal/domain/ad"
	"github.com/trampo-app/trampo/internal/domain/category"
	"github.com/trampo-app/trampo/internal/domain/highlight"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
)

// CatalogHandler serves plans, highlights, ads and categories
type CatalogHandler struct {
	plans      plan.Service
	highlights highlight.Service
	ads        ad.Service
	categories category.Repository
	logger     *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	plans plan.Service,
	highlights highlight.Service,
	ads ad.Service,
	categories category.Repository,
	log *logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		plans:      plans,
		highlights: highlights,
		ads:        ads,
		categories: categories,
		logger:     log,
	}
}

// ListPlans returns the highlight plans
// @Summary List highlight plans
// @Description Plans ordered by priority ascending; prices in reais
// @Tags Highlights
// @Produce json
// @Success 200 {array} dto.PlanDTO
// @Router /highlight-plans [get]
func (h *CatalogHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.plans.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ToPlanDTOs(plans))
}

// ListHighlights returns the caller's highlight history
// @Summary List my highlights
// @Tags Highlights
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.HighlightDTO
// @Failure 401 {object} utils.ErrorResponse
// @Router /highlights [get]
func (h *CatalogHandler) ListHighlights(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	hs, err := h.highlights.ListForUser(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ToHighlightDTOs(hs, time.Now()))
}

// ListAds returns the ads currently on display
// @Summary List current ads
// @Tags Ads
// @Produce json
// @Param target query string false "WORKERS or EMPLOYERS"
// @Success 200 {array} ad.Ad
// @Failure 400 {object} utils.ErrorResponse
// @Router /ads [get]
func (h *CatalogHandler) ListAds(w http.ResponseWriter, r *http.Request) {
	target := ad.Target(strings.ToUpper(r.URL.Query().Get("target")))
	if target != "" && !target.Valid() {
		utils.WriteError(w, errors.FieldError("target", "must be ALL, WORKERS or EMPLOYERS"))
		return
	}

	ads, err := h.ads.ListCurrent(r.Context(), target)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, nonNil(ads))
}

// ListMyAds returns the caller's ads
// @Summary List my ads
// @Tags Ads
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ad.Ad
// @Router /ads/mine [get]
func (h *CatalogHandler) ListMyAds(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	ads, err := h.ads.ListMine(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, nonNil(ads))
}

// ListCategories returns the service categories
// @Summary List categories
// @Tags Categories
// @Produce json
// @Success 200 {array} category.Category
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.categories.List(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, nonNil(cats))
}

// nonNil makes empty lists encode as [] instead of null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
