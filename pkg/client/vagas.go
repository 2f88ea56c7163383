package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// VagaService handles job posting API calls
type VagaService struct {
	client *Client
}

// VagaListOptions contains options for listing vagas
type VagaListOptions struct {
	ListOptions
	CategoryID string
	City       string
	State      string
	Query      string
}

// List retrieves open vagas, boosted ones first
func (s *VagaService) List(ctx context.Context, opts *VagaListOptions) (*Page[Vaga], error) {
	query := url.Values{}

	if opts != nil {
		if opts.Page > 0 {
			query.Set("page", strconv.Itoa(opts.Page))
		}
		if opts.PageSize > 0 {
			query.Set("page_size", strconv.Itoa(opts.PageSize))
		}
		setIfNotEmpty(query, "categoryId", opts.CategoryID)
		setIfNotEmpty(query, "city", opts.City)
		setIfNotEmpty(query, "state", opts.State)
		setIfNotEmpty(query, "q", opts.Query)
	}

	var page Page[Vaga]
	if err := s.client.doRequest(ctx, http.MethodGet, apiPrefix+"/vagas", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a vaga with its etapas
func (s *VagaService) Get(ctx context.Context, id string) (*Vaga, error) {
	var v Vaga
	if err := s.client.doRequest(ctx, http.MethodGet, apiPrefix+"/vagas/"+url.PathEscape(id), nil, nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Mine retrieves the caller's vagas
func (s *VagaService) Mine(ctx context.Context) ([]Vaga, error) {
	var vs []Vaga
	if err := s.client.doRequest(ctx, http.MethodGet, apiPrefix+"/vagas/mine", nil, nil, &vs); err != nil {
		return nil, err
	}
	return vs, nil
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
