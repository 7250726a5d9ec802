package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // User's search query

	// Filters
	Category   string   // Filter by exact category slug
	Difficulty string   // Filter by difficulty level
	Tags       []string // Filter by tags (OR across tags)
	MinRating  float64  // Minimum average rating (0 = no filter)
	Featured   *bool    // Filter by featured flag (nil = no filter)

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "title", "rating", "recent"
	SortOrder string // "asc", "desc"

	// Options
	IncludeFacets bool     // Include facet counts in results
	FacetFields   []string // Which fields to facet on
	Highlight     bool     // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:         20,
		Offset:        0,
		SortBy:        "relevance",
		SortOrder:     "desc",
		IncludeFacets: true,
		FacetFields:   []string{"category", "difficulty", "tags"},
		Highlight:     true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"took_ms"`
	Hits   []SearchHit  `json:"hits"`
	Facets SearchFacets `json:"facets,omitempty"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID          string            `json:"id"`
	Score       float64           `json:"score"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Author      string            `json:"author,omitempty"`
	Category    string            `json:"category,omitempty"`
	Difficulty  string            `json:"difficulty,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Rating      float64           `json:"rating,omitempty"`
	Featured    bool              `json:"featured,omitempty"`
	Highlights  map[string]string `json:"highlights,omitempty"`
}

// SearchFacets contains facet counts.
type SearchFacets struct {
	Categories   []FacetCount `json:"categories,omitempty"`
	Difficulties []FacetCount `json:"difficulties,omitempty"`
	Tags         []FacetCount `json:"tags,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Build the query
	searchQuery := buildSearchQuery(params)

	// Create search request
	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	// Add sorting
	addSorting(searchRequest, params)

	// Add facets
	if params.IncludeFacets {
		addFacets(searchRequest, params)
	}

	// Add highlighting
	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
		searchRequest.Highlight.AddField("description")
		searchRequest.Highlight.AddField("tags")
	}

	// Request stored fields
	searchRequest.Fields = []string{
		"id", "title", "description", "author", "category",
		"difficulty", "tags", "rating", "featured",
	}

	// Execute search
	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	// Convert results
	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		// Extract stored fields
		if t, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = t
		}
		if d, ok := hit.Fields["description"].(string); ok {
			searchHit.Description = d
		}
		if a, ok := hit.Fields["author"].(string); ok {
			searchHit.Author = a
		}
		if c, ok := hit.Fields["category"].(string); ok {
			searchHit.Category = c
		}
		if d, ok := hit.Fields["difficulty"].(string); ok {
			searchHit.Difficulty = d
		}
		if r, ok := hit.Fields["rating"].(float64); ok {
			searchHit.Rating = r
		}
		if f, ok := hit.Fields["featured"].(bool); ok {
			searchHit.Featured = f
		}

		// Bleve flattens single-element arrays to scalars
		switch tags := hit.Fields["tags"].(type) {
		case string:
			searchHit.Tags = []string{tags}
		case []interface{}:
			for _, t := range tags {
				if ts, ok := t.(string); ok {
					searchHit.Tags = append(searchHit.Tags, ts)
				}
			}
		}

		// Extract highlights
		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	// Extract facets
	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Main text query
	// Search strategy: titles carry the highest boost, descriptions come
	// next, and the prompt body catches everything else. A fuzzy variant
	// on the title tolerates typos, and a prefix variant supports
	// search-as-you-type.
	if params.Query != "" {
		textQueries := []query.Query{}

		// Title match with highest boost
		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleMatch)

		// Description match
		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		descMatch.SetBoost(1.5)
		textQueries = append(textQueries, descMatch)

		// Prompt body match
		contentMatch := bleve.NewMatchQuery(params.Query)
		contentMatch.SetField("content")
		textQueries = append(textQueries, contentMatch)

		// Add fuzzy matching for typo tolerance on title
		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("title")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		// Combine with OR (match any field)
		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Category filter (exact match)
	if params.Category != "" {
		cq := bleve.NewTermQuery(params.Category)
		cq.SetField("category")
		queries = append(queries, cq)
	}

	// Difficulty filter (exact match)
	if params.Difficulty != "" {
		dq := bleve.NewTermQuery(params.Difficulty)
		dq.SetField("difficulty")
		queries = append(queries, dq)
	}

	// Tag filter (exact match, OR across tags)
	if len(params.Tags) > 0 {
		tagQueries := make([]query.Query, len(params.Tags))
		for i, tag := range params.Tags {
			tq := bleve.NewTermQuery(tag)
			tq.SetField("tags")
			tagQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(tagQueries...))
	}

	// Minimum rating filter
	// Open upper bound: the default range query excludes its max, which
	// would drop five-star prompts.
	if params.MinRating > 0 {
		minRating := params.MinRating
		rangeQuery := bleve.NewNumericRangeQuery(&minRating, nil)
		rangeQuery.SetField("rating")
		queries = append(queries, rangeQuery)
	}

	// Featured filter
	if params.Featured != nil {
		fq := bleve.NewBoolFieldQuery(*params.Featured)
		fq.SetField("featured")
		queries = append(queries, fq)
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	switch params.SortBy {
	case "title":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-title"})
		} else {
			req.SortBy([]string{"title"})
		}
	case "rating":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"rating", "-_score"})
		} else {
			req.SortBy([]string{"-rating", "-_score"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"created_at"})
		} else {
			req.SortBy([]string{"-created_at"})
		}
	default:
		// Relevance (score) is default - Bleve handles this
		req.SortBy([]string{"-_score"})
	}
}

// addFacets configures facet requests.
func addFacets(req *bleve.SearchRequest, params SearchParams) {
	for _, field := range params.FacetFields {
		facetReq := bleve.NewFacetRequest(field, 20) // Top 20 values
		req.AddFacet(field, facetReq)
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) SearchFacets {
	facets := SearchFacets{}

	if categoryFacet, ok := result.Facets["category"]; ok {
		for _, term := range categoryFacet.Terms.Terms() {
			facets.Categories = append(facets.Categories, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if difficultyFacet, ok := result.Facets["difficulty"]; ok {
		for _, term := range difficultyFacet.Terms.Terms() {
			facets.Difficulties = append(facets.Difficulties, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if tagFacet, ok := result.Facets["tags"]; ok {
		for _, term := range tagFacet.Terms.Terms() {
			facets.Tags = append(facets.Tags, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	return facets
}
