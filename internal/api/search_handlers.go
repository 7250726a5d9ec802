package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/promptdeckapp/promptdeck/internal/errors"
	"github.com/promptdeckapp/promptdeck/internal/search"
)

// maxSearchLimit caps a single search page.
const maxSearchLimit = 100

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search prompts",
		Description: "Full-text search over prompt titles, descriptions, content, and tags",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

// SearchInput contains parameters for searching prompts.
type SearchInput struct {
	Query      string `query:"q" validate:"required,min=1,max=200" doc:"Search query"`
	Limit      int    `query:"limit" validate:"omitempty,gte=1,lte=100" doc:"Max hits (default 20)"`
	Category   string `query:"category" validate:"omitempty,max=50" doc:"Filter by category slug"`
	Difficulty string `query:"difficulty" validate:"omitempty,max=20" doc:"Filter by difficulty level"`
	Facets     bool   `query:"facets" doc:"Include facet counts in the response"`
}

// SearchHitResult contains a single search result.
type SearchHitResult struct {
	ID          string            `json:"id" doc:"Prompt ID"`
	Score       float64           `json:"score" doc:"Search relevance score"`
	Title       string            `json:"title" doc:"Prompt title"`
	Description string            `json:"description,omitempty" doc:"Short description"`
	Author      string            `json:"author,omitempty" doc:"Author name"`
	Category    string            `json:"category,omitempty" doc:"Category slug"`
	Difficulty  string            `json:"difficulty,omitempty" doc:"Difficulty level"`
	Tags        []string          `json:"tags,omitempty" doc:"Tag slugs"`
	Rating      float64           `json:"rating,omitempty" doc:"Average star rating"`
	Featured    bool              `json:"featured,omitempty" doc:"Featured prompt"`
	Highlights  map[string]string `json:"highlights,omitempty" doc:"Highlighted matches"`
}

// SearchFacets contains facet counts for filtering.
type SearchFacets struct {
	Categories   []FacetCount `json:"categories,omitempty" doc:"Category facets"`
	Difficulties []FacetCount `json:"difficulties,omitempty" doc:"Difficulty facets"`
	Tags         []FacetCount `json:"tags,omitempty" doc:"Tag facets"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value" doc:"Facet value"`
	Count int    `json:"count" doc:"Number of matches"`
}

// SearchResponse contains scored search results.
type SearchResponse struct {
	Query  string            `json:"query" doc:"Original search query"`
	Total  int64             `json:"total" doc:"Total matches"`
	TookMs int64             `json:"took_ms" doc:"Search duration in milliseconds"`
	Hits   []SearchHitResult `json:"hits" doc:"Search results"`
	Facets *SearchFacets     `json:"facets,omitempty" doc:"Facet counts for filtering"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, domainerrors.Validation("search query must not be empty")
	}

	params := search.DefaultSearchParams()
	params.Query = query
	params.Category = input.Category
	params.Difficulty = input.Difficulty
	params.IncludeFacets = input.Facets
	if input.Limit > 0 {
		params.Limit = min(input.Limit, maxSearchLimit)
	}

	result, err := s.searchService.Search(ctx, params)
	if err != nil {
		s.logger.Error("search failed", "error", err, "query", query)
		return nil, err
	}

	resp := SearchResponse{
		Query:  query,
		Total:  int64(result.Total), //nolint:gosec // Safe: total count won't exceed int64
		TookMs: result.TookMs,
		Hits:   make([]SearchHitResult, 0, len(result.Hits)),
	}

	for i := range result.Hits {
		hit := &result.Hits[i]
		resp.Hits = append(resp.Hits, SearchHitResult{
			ID:          hit.ID,
			Score:       hit.Score,
			Title:       hit.Title,
			Description: hit.Description,
			Author:      hit.Author,
			Category:    hit.Category,
			Difficulty:  hit.Difficulty,
			Tags:        hit.Tags,
			Rating:      hit.Rating,
			Featured:    hit.Featured,
			Highlights:  hit.Highlights,
		})
	}

	if input.Facets {
		resp.Facets = &SearchFacets{
			Categories:   convertFacets(result.Facets.Categories),
			Difficulties: convertFacets(result.Facets.Difficulties),
			Tags:         convertFacets(result.Facets.Tags),
		}
	}

	return &SearchOutput{Body: resp}, nil
}

func convertFacets(counts []search.FacetCount) []FacetCount {
	if len(counts) == 0 {
		return nil
	}
	out := make([]FacetCount, len(counts))
	for i, c := range counts {
		out[i] = FacetCount{Value: c.Value, Count: c.Count}
	}
	return out
}
