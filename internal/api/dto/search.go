package dto

import "github.com/trampo-app/trampo/internal/services"

// SearchResultDTO is one ranked search hit
type SearchResultDTO struct {
	*ProfileDTO
	Highlighted bool `json:"highlighted"`
}

// ToSearchResultDTOs converts ranked results, hiding email addresses
func ToSearchResultDTOs(results []*services.SearchResult) []*SearchResultDTO {
	out := make([]*SearchResultDTO, 0, len(results))
	for _, r := range results {
		out = append(out, &SearchResultDTO{
			ProfileDTO:  ToPublicProfileDTO(r.Profile, r.Plan),
			Highlighted: r.Plan != nil,
		})
	}
	return out
}

// UploadResponse carries the public URL of an uploaded file
type UploadResponse struct {
	URL string `json:"url"`
}
