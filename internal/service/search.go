package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	"github.com/promptdeckapp/promptdeck/internal/search"
	"github.com/promptdeckapp/promptdeck/internal/store"
)

// SearchService provides search functionality across the prompt library.
// It bridges the search index with the data store, handling document
// creation, updates, and query execution.
type SearchService struct {
	index  *search.SearchIndex
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search executes a full-text search over the prompt library.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// IndexPrompt indexes a single prompt.
// Call this when a prompt is created or updated.
func (s *SearchService) IndexPrompt(_ context.Context, p *domain.Prompt) error {
	doc := search.PromptToSearchDocument(p)

	if err := s.index.IndexDocument(doc); err != nil {
		return fmt.Errorf("index document: %w", err)
	}

	s.logger.Debug("indexed prompt", "id", p.ID, "title", p.Title)
	return nil
}

// DeletePrompt removes a prompt from the index.
func (s *SearchService) DeletePrompt(_ context.Context, promptID string) error {
	return s.index.DeleteDocument(promptID)
}

// DocumentCount returns the number of indexed documents.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// ReindexAll rebuilds the entire search index from the store.
// This is a heavy operation - use sparingly.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	s.logger.Info("starting full reindex")

	// Rebuild index (drops existing)
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	prompts, err := s.store.AllPrompts(ctx)
	if err != nil {
		return fmt.Errorf("list prompts: %w", err)
	}

	docs := make([]*search.SearchDocument, 0, len(prompts))
	for _, p := range prompts {
		docs = append(docs, search.PromptToSearchDocument(p))
	}

	if len(docs) > 0 {
		if err := s.index.IndexDocuments(docs); err != nil {
			return fmt.Errorf("index prompts: %w", err)
		}
	}

	s.logger.Info("full reindex complete", "documents", len(docs))

	return nil
}
