package store

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	domainerrors "github.com/promptdeckapp/promptdeck/internal/errors"
)

func TestCreateAndGetPrompt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	p := &domain.Prompt{
		CreatedAt:   now,
		UpdatedAt:   now,
		ID:          "prm-1",
		Title:       "Code Review Checklist",
		Content:     "Review the following diff: {{diff}}",
		Description: "Structured review guidance",
		Category:    "development",
		Author:      "PromptDeck Team",
		Difficulty:  domain.DifficultyIntermediate,
		Tags:        []string{"code-review", "engineering"},
		Rating:      4.5,
		RatingCount: 12,
		Featured:    true,
	}

	if err := s.CreatePrompt(ctx, p); err != nil {
		t.Fatalf("CreatePrompt: %v", err)
	}

	got, err := s.GetPrompt(ctx, "prm-1")
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}

	if got.Title != p.Title {
		t.Errorf("Title: got %q, want %q", got.Title, p.Title)
	}
	if got.Content != p.Content {
		t.Errorf("Content: got %q, want %q", got.Content, p.Content)
	}
	if got.Description != p.Description {
		t.Errorf("Description: got %q, want %q", got.Description, p.Description)
	}
	if got.Category != p.Category {
		t.Errorf("Category: got %q, want %q", got.Category, p.Category)
	}
	if got.Author != p.Author {
		t.Errorf("Author: got %q, want %q", got.Author, p.Author)
	}
	if got.Difficulty != p.Difficulty {
		t.Errorf("Difficulty: got %q, want %q", got.Difficulty, p.Difficulty)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "code-review" || got.Tags[1] != "engineering" {
		t.Errorf("Tags: got %v, want %v", got.Tags, p.Tags)
	}
	if got.Rating != p.Rating {
		t.Errorf("Rating: got %v, want %v", got.Rating, p.Rating)
	}
	if got.RatingCount != p.RatingCount {
		t.Errorf("RatingCount: got %d, want %d", got.RatingCount, p.RatingCount)
	}
	if !got.Featured {
		t.Error("Featured: got false, want true")
	}
	if got.CreatedAt.Unix() != p.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, p.CreatedAt)
	}
}

func TestCreatePrompt_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestPrompt(t, s, "prm-dup", "First")

	now := time.Now()
	err := s.CreatePrompt(ctx, &domain.Prompt{
		CreatedAt: now, UpdatedAt: now,
		ID: "prm-dup", Title: "Second", Content: "other",
	})
	if !errors.Is(err, domainerrors.ErrAlreadyExists) {
		t.Fatalf("expected ALREADY_EXISTS, got %v", err)
	}
}

func TestGetPrompt_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetPrompt(context.Background(), "nonexistent")
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func seedListPrompts(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	prompts := []*domain.Prompt{
		{
			CreatedAt: base, UpdatedAt: base,
			ID: "prm-review", Title: "Code Review Checklist", Content: "review",
			Category: "development", Difficulty: domain.DifficultyIntermediate,
			Rating: 4.8, Featured: true,
		},
		{
			CreatedAt: base.Add(time.Minute), UpdatedAt: base.Add(time.Minute),
			ID: "prm-debug", Title: "Debugging Companion", Content: "debug",
			Description: "Walks through a stack trace",
			Category:    "development", Difficulty: domain.DifficultyAdvanced,
			Rating: 4.1,
		},
		{
			CreatedAt: base.Add(2 * time.Minute), UpdatedAt: base.Add(2 * time.Minute),
			ID: "prm-essay", Title: "Essay Outliner", Content: "essay",
			Category: "writing", Difficulty: domain.DifficultyBeginner,
			Rating: 4.8,
		},
	}
	for _, p := range prompts {
		if err := s.CreatePrompt(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}
}

func TestListPrompts_DefaultOrderIsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	seedListPrompts(t, s)

	prompts, err := s.ListPrompts(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("ListPrompts: %v", err)
	}

	if len(prompts) != 3 {
		t.Fatalf("got %d prompts, want 3", len(prompts))
	}
	if prompts[0].ID != "prm-essay" || prompts[2].ID != "prm-review" {
		t.Errorf("order: got [%s %s %s]", prompts[0].ID, prompts[1].ID, prompts[2].ID)
	}
}

func TestListPrompts_Filters(t *testing.T) {
	s := newTestStore(t)
	seedListPrompts(t, s)
	ctx := context.Background()

	byCategory, err := s.ListPrompts(ctx, ListFilter{Category: "development"})
	if err != nil {
		t.Fatalf("by category: %v", err)
	}
	if len(byCategory) != 2 {
		t.Errorf("by category: got %d, want 2", len(byCategory))
	}

	byDifficulty, err := s.ListPrompts(ctx, ListFilter{Difficulty: domain.DifficultyAdvanced})
	if err != nil {
		t.Fatalf("by difficulty: %v", err)
	}
	if len(byDifficulty) != 1 || byDifficulty[0].ID != "prm-debug" {
		t.Errorf("by difficulty: got %v", byDifficulty)
	}

	featured := true
	byFeatured, err := s.ListPrompts(ctx, ListFilter{Featured: &featured})
	if err != nil {
		t.Fatalf("by featured: %v", err)
	}
	if len(byFeatured) != 1 || byFeatured[0].ID != "prm-review" {
		t.Errorf("by featured: got %v", byFeatured)
	}

	// Query matches title and description, case-insensitively.
	byQuery, err := s.ListPrompts(ctx, ListFilter{Query: "STACK TRACE"})
	if err != nil {
		t.Fatalf("by query: %v", err)
	}
	if len(byQuery) != 1 || byQuery[0].ID != "prm-debug" {
		t.Errorf("by query: got %v", byQuery)
	}

	combined, err := s.ListPrompts(ctx, ListFilter{Category: "development", Difficulty: domain.DifficultyBeginner})
	if err != nil {
		t.Fatalf("combined: %v", err)
	}
	if len(combined) != 0 {
		t.Errorf("combined: got %d, want 0", len(combined))
	}
}

func TestListPrompts_SortByRating(t *testing.T) {
	s := newTestStore(t)
	seedListPrompts(t, s)

	prompts, err := s.ListPrompts(context.Background(), ListFilter{Sort: SortRating})
	if err != nil {
		t.Fatalf("ListPrompts: %v", err)
	}

	if len(prompts) != 3 {
		t.Fatalf("got %d prompts, want 3", len(prompts))
	}
	// Ties on rating fall back to newest first.
	if prompts[0].ID != "prm-essay" || prompts[1].ID != "prm-review" || prompts[2].ID != "prm-debug" {
		t.Errorf("order: got [%s %s %s]", prompts[0].ID, prompts[1].ID, prompts[2].ID)
	}
}

func TestListPrompts_Pagination(t *testing.T) {
	s := newTestStore(t)
	seedListPrompts(t, s)
	ctx := context.Background()

	page1, err := s.ListPrompts(ctx, ListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1: got %d, want 2", len(page1))
	}

	page2, err := s.ListPrompts(ctx, ListFilter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("page 2: got %d, want 1", len(page2))
	}
	if page2[0].ID == page1[0].ID || page2[0].ID == page1[1].ID {
		t.Errorf("page 2 repeats page 1: %s", page2[0].ID)
	}
}

func TestUpsertPrompt_PreservesRatings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestPrompt(t, s, "prm-up", "Original Title")
	if _, err := s.ApplyRating(ctx, "prm-up", 4); err != nil {
		t.Fatalf("ApplyRating: %v", err)
	}

	now := time.Now()
	err := s.UpsertPrompt(ctx, &domain.Prompt{
		CreatedAt: now, UpdatedAt: now,
		ID: "prm-up", Title: "Refreshed Title", Content: "refreshed",
	})
	if err != nil {
		t.Fatalf("UpsertPrompt: %v", err)
	}

	got, err := s.GetPrompt(ctx, "prm-up")
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if got.Title != "Refreshed Title" {
		t.Errorf("Title: got %q, want %q", got.Title, "Refreshed Title")
	}
	if got.Rating != 4.0 || got.RatingCount != 1 {
		t.Errorf("rating clobbered: got %v/%d, want 4.0/1", got.Rating, got.RatingCount)
	}
}

func TestUpsertPrompt_InsertsNew(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	err := s.UpsertPrompt(ctx, &domain.Prompt{
		CreatedAt: now, UpdatedAt: now,
		ID: "prm-new", Title: "Brand New", Content: "new",
	})
	if err != nil {
		t.Fatalf("UpsertPrompt: %v", err)
	}

	if _, err := s.GetPrompt(ctx, "prm-new"); err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
}

func TestApplyRating(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestPrompt(t, s, "prm-rate", "Rate Me")

	got, err := s.ApplyRating(ctx, "prm-rate", 4)
	if err != nil {
		t.Fatalf("ApplyRating: %v", err)
	}
	if got.Rating != 4.0 || got.RatingCount != 1 {
		t.Errorf("after first rating: got %v/%d, want 4.0/1", got.Rating, got.RatingCount)
	}

	got, err = s.ApplyRating(ctx, "prm-rate", 5)
	if err != nil {
		t.Fatalf("ApplyRating: %v", err)
	}
	if math.Abs(got.Rating-4.5) > 1e-9 || got.RatingCount != 2 {
		t.Errorf("after second rating: got %v/%d, want 4.5/2", got.Rating, got.RatingCount)
	}
}

func TestApplyRating_OutOfRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestPrompt(t, s, "prm-rate", "Rate Me")

	for _, stars := range []int{0, 6, -1} {
		_, err := s.ApplyRating(ctx, "prm-rate", stars)
		if !errors.Is(err, domainerrors.ErrValidation) {
			t.Errorf("stars=%d: expected VALIDATION, got %v", stars, err)
		}
	}
}

func TestApplyRating_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ApplyRating(context.Background(), "nonexistent", 3)
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeletePrompt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestPrompt(t, s, "prm-del", "Delete Me")

	if err := s.DeletePrompt(ctx, "prm-del"); err != nil {
		t.Fatalf("DeletePrompt: %v", err)
	}

	_, err := s.GetPrompt(ctx, "prm-del")
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND after delete, got %v", err)
	}

	if err := s.DeletePrompt(ctx, "prm-del"); !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected NOT_FOUND on second delete, got %v", err)
	}
}

func TestDeletePrompt_CascadesMemberships(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	insertTestPrompt(t, s, "prm-cas", "Cascade Me")
	now := time.Now()
	col := &domain.Collection{
		CreatedAt: now, ID: "col-cas", Name: "Cascade", PromptIDs: []string{"prm-cas"},
	}
	if err := s.CreateCollection(ctx, "usr-test", col); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	if err := s.AddFavorite(ctx, "user-1", "prm-cas"); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}

	if err := s.DeletePrompt(ctx, "prm-cas"); err != nil {
		t.Fatalf("DeletePrompt: %v", err)
	}

	gotCol, err := s.GetCollection(ctx, "col-cas")
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}
	if len(gotCol.PromptIDs) != 0 {
		t.Errorf("collection membership survived delete: %v", gotCol.PromptIDs)
	}

	favs, err := s.ListFavoriteIDs(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListFavoriteIDs: %v", err)
	}
	if len(favs) != 0 {
		t.Errorf("favorite survived delete: %v", favs)
	}
}

func TestCountPrompts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.CountPrompts(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("CountPrompts: %v", err)
	}
	if count != 0 {
		t.Errorf("empty store: got %d, want 0", count)
	}

	insertTestPrompt(t, s, "prm-1", "One")
	insertTestPrompt(t, s, "prm-2", "Two")

	count, err = s.CountPrompts(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("CountPrompts: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d, want 2", count)
	}
}

func TestCountPrompts_Filtered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for _, p := range []*domain.Prompt{
		{CreatedAt: now, UpdatedAt: now, ID: "prm-a", Title: "A", Content: "a", Category: "writing"},
		{CreatedAt: now, UpdatedAt: now, ID: "prm-b", Title: "B", Content: "b", Category: "development"},
		{CreatedAt: now, UpdatedAt: now, ID: "prm-c", Title: "C", Content: "c", Category: "development"},
	} {
		if err := s.CreatePrompt(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	count, err := s.CountPrompts(ctx, ListFilter{Category: "development", Limit: 1})
	if err != nil {
		t.Fatalf("CountPrompts: %v", err)
	}
	if count != 2 {
		t.Errorf("got %d, want 2 (limit must not affect the count)", count)
	}
}

func TestListCategories(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for _, p := range []*domain.Prompt{
		{CreatedAt: now, UpdatedAt: now, ID: "prm-a", Title: "A", Content: "a", Category: "writing"},
		{CreatedAt: now, UpdatedAt: now, ID: "prm-b", Title: "B", Content: "b", Category: "development"},
		{CreatedAt: now, UpdatedAt: now, ID: "prm-c", Title: "C", Content: "c", Category: "development"},
		{CreatedAt: now, UpdatedAt: now, ID: "prm-d", Title: "D", Content: "d"},
	} {
		if err := s.CreatePrompt(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "development" || categories[1] != "writing" {
		t.Errorf("got %v, want [development writing]", categories)
	}
}
