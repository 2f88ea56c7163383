package services

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/trampo-app/trampo/internal/domain/highlight"
	"github.com/trampo-app/trampo/internal/domain/plan"
	"github.com/trampo-app/trampo/internal/domain/user"
	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
)

// MaxSearchResults caps a marketplace search
const MaxSearchResults = 50

// SearchQuery is a marketplace search. Prices are in reais.
type SearchQuery struct {
	Role       user.Role
	CategoryID string
	Query      string
	City       string
	State      string
	MinPrice   *float64
	MaxPrice   *float64
}

// SearchResult is one ranked hit. Plan is the highest-priority plan the user
// is currently highlighted with.
type SearchResult struct {
	*user.Profile
	Plan *plan.Plan `json:"highlightPlan,omitempty"`
}

// SearchService ranks users for the marketplace search
type SearchService struct {
	users      user.Repository
	highlights highlight.Repository
	logger     *logger.Logger
	now        func() time.Time
}

// NewSearchService creates a new search service
func NewSearchService(users user.Repository, highlights highlight.Repository, log *logger.Logger) *SearchService {
	return &SearchService{
		users:      users,
		highlights: highlights,
		logger:     log,
		now:        time.Now,
	}
}

// Search returns up to MaxSearchResults users, highlighted users first by
// plan priority descending. The price range is inclusive and excludes users
// without a price.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) ([]*SearchResult, error) {
	if !q.Role.Valid() {
		return nil, errors.FieldError("type", "must be workers or employers")
	}
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return nil, errors.FieldError("minPrice", "must not exceed maxPrice")
	}

	rows, err := s.users.Search(ctx, user.SearchFilter{
		Role:       q.Role,
		CategoryID: q.CategoryID,
		Query:      strings.TrimSpace(q.Query),
		City:       q.City,
		State:      q.State,
		Limit:      MaxSearchResults,
	})
	if err != nil {
		return nil, err
	}

	min, max := toCents(q.MinPrice), toCents(q.MaxPrice)
	results := make([]*SearchResult, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if !inRange(row.PriceCents, min, max) {
			continue
		}
		profile := row.Profile
		results = append(results, &SearchResult{Profile: &profile})
		ids = append(ids, row.User.ID)
	}
	if len(results) == 0 {
		return results, nil
	}

	plans, err := s.highlights.CurrentPlans(ctx, ids, s.now())
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		r.Plan = plans[r.User.ID]
	}

	sort.SliceStable(results, func(i, j int) bool {
		return priority(results[i].Plan) > priority(results[j].Plan)
	})
	return results, nil
}

func priority(p *plan.Plan) int {
	if p == nil {
		return 0
	}
	return p.Priority
}

func toCents(reais *float64) *int64 {
	if reais == nil {
		return nil
	}
	c := int64(math.Round(*reais * 100))
	return &c
}

func inRange(price, min, max *int64) bool {
	if min == nil && max == nil {
		return true
	}
	if price == nil {
		return false
	}
	if min != nil && *price < *min {
		return false
	}
	if max != nil && *price > *max {
		return false
	}
	return true
}
