// Package seed imports prompt definitions into the store. Imports are
// idempotent: prompts are upserted by ID, so re-importing a file converges
// instead of duplicating.
package seed

import (
	"context"
	"github.com/go-json-experiment/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/promptdeckapp/promptdeck/internal/catalog"
	"github.com/promptdeckapp/promptdeck/internal/domain"
	"github.com/promptdeckapp/promptdeck/internal/id"
	"github.com/promptdeckapp/promptdeck/internal/store"
)

// File is the on-disk seed format. It matches the listing endpoint's shape,
// so a captured listing response can be replayed as a seed file.
type File struct {
	Prompts []*domain.Prompt `json:"prompts"`
}

// Seeder imports prompts into the store.
type Seeder struct {
	store  *store.Store
	logger *slog.Logger
}

// New creates a seeder writing to the given store.
func New(st *store.Store, logger *slog.Logger) *Seeder {
	return &Seeder{store: st, logger: logger}
}

// ImportFile reads a seed file and upserts its prompts.
// Returns the number of prompts imported.
func (s *Seeder) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	var seedFile File
	if err := json.UnmarshalRead(f, &seedFile); err != nil {
		return 0, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	count, err := s.Import(ctx, seedFile.Prompts)
	if err != nil {
		return count, err
	}

	s.logger.Info("seed file imported", "path", path, "prompts", count)
	return count, nil
}

// Import upserts the given prompts, filling in missing IDs and timestamps.
// Entries without a title or content are skipped with a warning rather than
// failing the whole batch.
func (s *Seeder) Import(ctx context.Context, prompts []*domain.Prompt) (int, error) {
	imported := 0
	for _, p := range prompts {
		if p == nil {
			s.logger.Warn("skipping empty seed entry")
			continue
		}
		if p.Title == "" || p.Content == "" {
			s.logger.Warn("skipping seed prompt without title or content", "id", p.ID)
			continue
		}

		if p.ID == "" {
			p.ID = id.MustGenerate(id.PrefixPrompt)
		}
		now := time.Now().UTC()
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}

		if err := s.store.UpsertPrompt(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert prompt %s: %w", p.ID, err)
		}
		imported++
	}
	return imported, nil
}

// ImportSamples seeds the built-in sample set. A freshly seeded server then
// serves the same prompts a client falls back to when it cannot reach one.
func (s *Seeder) ImportSamples(ctx context.Context) (int, error) {
	return s.Import(ctx, catalog.SamplePrompts())
}
