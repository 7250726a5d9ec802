package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for prompt documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on titles with English stemming
//  2. Searchable descriptions and prompt bodies without bloating the index
//  3. Exact keyword matching for category, difficulty and tag filters
//  4. Numeric fields for rating filters and recency sorting
//  5. Term vectors enabled on key fields for highlighting
func buildIndexMapping() mapping.IndexMapping {
	// Create the index mapping
	indexMapping := bleve.NewIndexMapping()

	// Use English analyzer as default for text fields
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	// Create document mapping
	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Title - primary search target, boosted at query time
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Description - searchable short summary
	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	descFieldMapping.Store = true
	descFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	// Content - the prompt body, searchable but not stored (too large)
	contentFieldMapping := bleve.NewTextFieldMapping()
	contentFieldMapping.Analyzer = en.AnalyzerName
	contentFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("content", contentFieldMapping)

	// Author - searchable with simple analyzer (no stemming of names)
	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Analyzer = simple.Name
	authorFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("author", authorFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Category - for exact filtering and faceting
	categoryFieldMapping := bleve.NewTextFieldMapping()
	categoryFieldMapping.Analyzer = keyword.Name
	categoryFieldMapping.Store = true // Store for retrieval in search results
	docMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	// Difficulty - for exact filtering and faceting
	difficultyFieldMapping := bleve.NewTextFieldMapping()
	difficultyFieldMapping.Analyzer = keyword.Name
	difficultyFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("difficulty", difficultyFieldMapping)

	// Tags - community-applied content descriptors
	// Keyword analyzer keeps compound slugs intact (e.g., "code-review")
	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	tagsFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	// --- Numeric and boolean fields (range queries, sorting) ---

	// Rating - for minimum-rating filtering and sorting
	ratingFieldMapping := bleve.NewNumericFieldMapping()
	ratingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("rating", ratingFieldMapping)

	// Featured - for boolean filtering
	featuredFieldMapping := bleve.NewBooleanFieldMapping()
	featuredFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("featured", featuredFieldMapping)

	// Timestamps - for sorting by recency
	createdAtFieldMapping := bleve.NewNumericFieldMapping()
	createdAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdAtFieldMapping)

	updatedAtFieldMapping := bleve.NewNumericFieldMapping()
	updatedAtFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("updated_at", updatedAtFieldMapping)

	// Register the document mapping
	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
