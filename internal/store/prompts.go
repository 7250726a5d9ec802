package store

import (
	"context"
	"database/sql"
	"github.com/go-json-experiment/json"
	"fmt"
	"strings"
	"time"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	domainerrors "github.com/promptdeckapp/promptdeck/internal/errors"
)

// SortRating orders a listing by average rating, best first. The default
// (empty) sort is newest first.
const SortRating = "rating"

// promptColumns is the ordered list of columns selected in prompt queries.
// Must match the scan order in scanPrompt.
const promptColumns = `id, created_at, updated_at, title, content, description,
	category, author, difficulty, tags, rating, rating_count, featured`

// promptColumnsAliased qualifies promptColumns with the "p" alias for joins.
const promptColumnsAliased = `p.id, p.created_at, p.updated_at, p.title, p.content, p.description,
	p.category, p.author, p.difficulty, p.tags, p.rating, p.rating_count, p.featured`

// scanPrompt scans a sql.Row (or sql.Rows via its Scan method) into a domain.Prompt.
func scanPrompt(scanner interface{ Scan(dest ...any) error }) (*domain.Prompt, error) {
	var p domain.Prompt

	var (
		createdAt   string
		updatedAt   string
		description sql.NullString
		category    sql.NullString
		author      sql.NullString
		difficulty  sql.NullString
		tags        sql.NullString
		featured    int
	)

	err := scanner.Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
		&p.Title,
		&p.Content,
		&description,
		&category,
		&author,
		&difficulty,
		&tags,
		&p.Rating,
		&p.RatingCount,
		&featured,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		p.Description = description.String
	}
	if category.Valid {
		p.Category = category.String
	}
	if author.Valid {
		p.Author = author.String
	}
	if difficulty.Valid {
		p.Difficulty = difficulty.String
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &p.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	p.Featured = featured != 0

	return &p, nil
}

// encodeTags marshals a tag list for the tags column. Empty lists become NULL.
func encodeTags(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode tags: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// CreatePrompt inserts a new prompt.
// Returns an ALREADY_EXISTS error on duplicate ID.
func (s *Store) CreatePrompt(ctx context.Context, p *domain.Prompt) error {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO prompts (
			id, created_at, updated_at, title, content, description,
			category, author, difficulty, tags, rating, rating_count, featured
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
		p.Title,
		p.Content,
		nullString(p.Description),
		nullString(p.Category),
		nullString(p.Author),
		nullString(p.Difficulty),
		tags,
		p.Rating,
		p.RatingCount,
		boolToInt(p.Featured),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domainerrors.AlreadyExistsf("prompt %q already exists", p.ID)
		}
		return err
	}

	s.indexPromptAsync(p)
	return nil
}

// UpsertPrompt inserts a prompt or refreshes its content fields if the ID is
// already present. Accumulated ratings survive a re-import.
func (s *Store) UpsertPrompt(ctx context.Context, p *domain.Prompt) error {
	tags, err := encodeTags(p.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO prompts (
			id, created_at, updated_at, title, content, description,
			category, author, difficulty, tags, rating, rating_count, featured
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			updated_at = excluded.updated_at,
			title = excluded.title,
			content = excluded.content,
			description = excluded.description,
			category = excluded.category,
			author = excluded.author,
			difficulty = excluded.difficulty,
			tags = excluded.tags,
			featured = excluded.featured`,
		p.ID,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
		p.Title,
		p.Content,
		nullString(p.Description),
		nullString(p.Category),
		nullString(p.Author),
		nullString(p.Difficulty),
		tags,
		p.Rating,
		p.RatingCount,
		boolToInt(p.Featured),
	)
	if err != nil {
		return err
	}

	stored, err := s.GetPrompt(ctx, p.ID)
	if err != nil {
		return err
	}
	s.indexPromptAsync(stored)
	return nil
}

// GetPrompt retrieves a prompt by ID.
// Returns a NOT_FOUND error if the prompt does not exist.
func (s *Store) GetPrompt(ctx context.Context, id string) (*domain.Prompt, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+promptColumns+` FROM prompts WHERE id = ?`, id)

	p, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.NotFoundf("prompt %q not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListFilter narrows and orders a prompt listing. Zero values mean "no
// constraint".
type ListFilter struct {
	Category   string
	Difficulty string
	Query      string
	Featured   *bool
	Sort       string
	Limit      int
	Offset     int
}

// listConditions builds the WHERE clause shared by ListPrompts and
// CountPrompts. Returns an empty string when the filter has no constraints.
func listConditions(f ListFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Difficulty != "" {
		conds = append(conds, "difficulty = ?")
		args = append(args, f.Difficulty)
	}
	if f.Featured != nil {
		conds = append(conds, "featured = ?")
		args = append(args, boolToInt(*f.Featured))
	}
	if f.Query != "" {
		conds = append(conds, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		pattern := "%" + strings.ToLower(f.Query) + "%"
		args = append(args, pattern, pattern)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListPrompts returns prompts matching the filter.
func (s *Store) ListPrompts(ctx context.Context, f ListFilter) ([]*domain.Prompt, error) {
	where, args := listConditions(f)
	query := `SELECT ` + promptColumns + ` FROM prompts` + where

	switch f.Sort {
	case SortRating:
		query += " ORDER BY rating DESC, created_at DESC"
	default:
		query += " ORDER BY created_at DESC"
	}

	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, max(f.Offset, 0))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []*domain.Prompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prompts, nil
}

// ApplyRating records one rating of 1 to 5 stars and returns the prompt with
// its recomputed running average.
// Returns a NOT_FOUND error if the prompt does not exist.
func (s *Store) ApplyRating(ctx context.Context, id string, stars int) (*domain.Prompt, error) {
	if stars < 1 || stars > 5 {
		return nil, domainerrors.Validation("rating must be between 1 and 5 stars")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p := &domain.Prompt{}
	err = tx.QueryRowContext(ctx,
		`SELECT rating, rating_count FROM prompts WHERE id = ?`, id).
		Scan(&p.Rating, &p.RatingCount)
	if err == sql.ErrNoRows {
		return nil, domainerrors.NotFoundf("prompt %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	p.ApplyRating(stars)

	_, err = tx.ExecContext(ctx,
		`UPDATE prompts SET rating = ?, rating_count = ?, updated_at = ? WHERE id = ?`,
		p.Rating, p.RatingCount, formatTime(time.Now()), id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stored, err := s.GetPrompt(ctx, id)
	if err != nil {
		return nil, err
	}
	s.indexPromptAsync(stored)
	return stored, nil
}

// DeletePrompt removes a prompt. Collection memberships and favorites cascade.
// Returns a NOT_FOUND error if the prompt does not exist.
func (s *Store) DeletePrompt(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domainerrors.NotFoundf("prompt %q not found", id)
	}

	s.unindexPromptAsync(id)
	return nil
}

// CountPrompts returns the number of prompts matching the filter, ignoring
// its Sort, Limit, and Offset. A zero filter counts everything.
func (s *Store) CountPrompts(ctx context.Context, f ListFilter) (int, error) {
	where, args := listConditions(f)
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM prompts`+where, args...).Scan(&count)
	return count, err
}

// ListCategories returns the distinct categories in use, alphabetically.
func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM prompts WHERE category IS NOT NULL AND category != '' ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// AllPrompts returns every stored prompt, oldest first. Used for search
// index rebuilds.
func (s *Store) AllPrompts(ctx context.Context) ([]*domain.Prompt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+promptColumns+` FROM prompts ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []*domain.Prompt
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return prompts, nil
}
