package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// SearchOptions filters a profile search
type SearchOptions struct {
	Type       string // workers or employers
	CategoryID string
	Query      string
	City       string
	State      string
	MinPrice   *float64 // reais
	MaxPrice   *float64 // reais
}

// Search finds profiles of one side of the marketplace, highlighted first
func (c *Client) Search(ctx context.Context, opts SearchOptions) ([]SearchResult, error) {
	query := url.Values{}
	setIfNotEmpty(query, "type", opts.Type)
	setIfNotEmpty(query, "categoryId", opts.CategoryID)
	setIfNotEmpty(query, "q", opts.Query)
	setIfNotEmpty(query, "city", opts.City)
	setIfNotEmpty(query, "state", opts.State)
	if opts.MinPrice != nil {
		query.Set("minPrice", strconv.FormatFloat(*opts.MinPrice, 'f', -1, 64))
	}
	if opts.MaxPrice != nil {
		query.Set("maxPrice", strconv.FormatFloat(*opts.MaxPrice, 'f', -1, 64))
	}

	var results []SearchResult
	if err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/search", query, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}
