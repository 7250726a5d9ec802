// Package store provides SQLite-backed persistence for the PromptDeck server.
//
// Prompts, collections and per-user favorites live in a single database file.
// The store keeps the search index in sync through the SearchIndexer hook;
// index updates run asynchronously so they never block a write.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/promptdeckapp/promptdeck/internal/domain"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// SearchIndexer is the interface for updating the search index.
// Store uses this to keep search in sync without depending on the search
// implementation.
type SearchIndexer interface {
	IndexPrompt(ctx context.Context, p *domain.Prompt) error
	DeletePrompt(ctx context.Context, promptID string) error
}

// NoopSearchIndexer is a no-op implementation for testing and for setups
// that run without a search index.
type NoopSearchIndexer struct{}

func (NoopSearchIndexer) IndexPrompt(context.Context, *domain.Prompt) error { return nil }
func (NoopSearchIndexer) DeletePrompt(context.Context, string) error        { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer.
func NewNoopSearchIndexer() SearchIndexer { return NoopSearchIndexer{} }

// Store provides SQLite-backed persistence for the PromptDeck server.
type Store struct {
	db            *sql.DB
	logger        *slog.Logger
	searchIndexer SearchIndexer
}

// Open creates a new SQLite store at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite allows a single writer; keep the pool small.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	return &Store{
		db:            db,
		logger:        logger,
		searchIndexer: NewNoopSearchIndexer(),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer used for maintaining the search index.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.searchIndexer = indexer
}

// indexPromptAsync pushes a prompt into the search index without blocking
// the calling write.
func (s *Store) indexPromptAsync(p *domain.Prompt) {
	if s.searchIndexer == nil {
		return
	}
	go func() {
		if err := s.searchIndexer.IndexPrompt(context.Background(), p); err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to index prompt for search", "prompt_id", p.ID, "error", err)
			}
		}
	}()
}

// unindexPromptAsync removes a prompt from the search index without blocking
// the calling write.
func (s *Store) unindexPromptAsync(promptID string) {
	if s.searchIndexer == nil {
		return
	}
	go func() {
		if err := s.searchIndexer.DeletePrompt(context.Background(), promptID); err != nil {
			if s.logger != nil {
				s.logger.Warn("failed to remove prompt from search index", "prompt_id", promptID, "error", err)
			}
		}
	}()
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// nullString returns a sql.NullString from a string, treating "" as NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// boolToInt converts a bool to the 0/1 form SQLite stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
