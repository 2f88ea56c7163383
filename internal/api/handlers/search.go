package handlers

import (
	"net/http"
	"strings"

	"github.com/trampo-app/trampo/internal/api/dto"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/utils"
	"github.com/trampo-app/trampo/internal/services"
)

// SearchHandler handles marketplace search
type SearchHandler struct {
	search *services.SearchService
	logger *logger.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *services.SearchService, log *logger.Logger) *SearchHandler {
	return &SearchHandler{search: search, logger: log}
}

var searchRoles = map[string]user.Role{
	"workers":    user.RolePrestador,
	"prestador":  user.RolePrestador,
	"employers":  user.RoleEmpregador,
	"empregador": user.RoleEmpregador,
}

// Search ranks workers or employers
// @Summary Search the marketplace
// @Description Up to 50 users, highlighted users first by plan priority. Prices in reais.
// @Tags Search
// @Produce json
// @Param type query string true "workers or employers"
// @Param categoryId query string false "Category ID (workers only)"
// @Param q query string false "Free text"
// @Param city query string false "City"
// @Param state query string false "State (UF)"
// @Param minPrice query number false "Minimum price or budget"
// @Param maxPrice query number false "Maximum price or budget"
// @Success 200 {array} dto.SearchResultDTO
// @Failure 400 {object} utils.ErrorResponse
// @Router /search [get]
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	role, ok := searchRoles[strings.ToLower(q.Get("type"))]
	if !ok {
		utils.WriteError(w, errors.FieldError("type", "must be workers or employers"))
		return
	}

	minPrice := utils.ParseFloatQuery(r, "minPrice")
	maxPrice := utils.ParseFloatQuery(r, "maxPrice")
	if (q.Get("minPrice") != "" && minPrice == nil) || (q.Get("maxPrice") != "" && maxPrice == nil) {
		utils.WriteError(w, errors.FieldError("minPrice", "prices must be numbers"))
		return
	}

	results, err := h.search.Search(r.Context(), services.SearchQuery{
		Role:       role,
		CategoryID: q.Get("categoryId"),
		Query:      q.Get("q"),
		City:       q.Get("city"),
		State:      q.Get("state"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.ToSearchResultDTOs(results))
}
