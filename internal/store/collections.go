package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	domainerrors "github.com/promptdeckapp/promptdeck/internal/errors"
)

// collectionColumns is the ordered list of columns selected in collection
// queries. Must match the scan order in scanCollection.
const collectionColumns = `id, created_at, name, description`

// scanCollection scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Collection. PromptIDs are loaded separately.
func scanCollection(scanner interface{ Scan(dest ...any) error }) (*domain.Collection, error) {
	var c domain.Collection

	var (
		createdAt   string
		description sql.NullString
	)

	err := scanner.Scan(&c.ID, &createdAt, &c.Name, &description)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		c.Description = description.String
	}

	c.PromptIDs = []string{}
	return &c, nil
}

// loadCollectionPromptIDs loads the ordered prompt IDs for a collection.
func (s *Store) loadCollectionPromptIDs(ctx context.Context, collectionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT prompt_id FROM collection_prompts WHERE collection_id = ? ORDER BY sort_order`, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promptIDs := []string{}
	for rows.Next() {
		var promptID string
		if err := rows.Scan(&promptID); err != nil {
			return nil, err
		}
		promptIDs = append(promptIDs, promptID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return promptIDs, nil
}

// CreateCollection inserts a new collection owned by userID, along with its
// prompt associations. Names are unique per user; a taken name returns a
// DUPLICATE_NAME error and a duplicate ID returns ALREADY_EXISTS.
func (s *Store) CreateCollection(ctx context.Context, userID string, c *domain.Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO collections (id, created_at, user_id, name, description)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID,
		formatTime(c.CreatedAt),
		userID,
		c.Name,
		nullString(c.Description),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: collections.user_id, collections.name") {
			return domainerrors.DuplicateNamef("a collection named %q already exists", c.Name)
		}
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domainerrors.AlreadyExistsf("collection %q already exists", c.ID)
		}
		return err
	}

	for i, promptID := range c.PromptIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO collection_prompts (collection_id, prompt_id, sort_order)
			VALUES (?, ?, ?)`,
			c.ID, promptID, i,
		)
		if err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
				return domainerrors.NotFoundf("prompt %q not found", promptID)
			}
			return fmt.Errorf("insert collection_prompt %s: %w", promptID, err)
		}
	}

	return tx.Commit()
}

// GetCollection retrieves a collection by ID, including ordered prompt IDs.
// Returns a NOT_FOUND error if the collection does not exist.
func (s *Store) GetCollection(ctx context.Context, id string) (*domain.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id = ?`, id)

	c, err := scanCollection(row)
	if err == sql.ErrNoRows {
		return nil, domainerrors.NotFoundf("collection %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	c.PromptIDs, err = s.loadCollectionPromptIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load collection prompt ids: %w", err)
	}
	return c, nil
}

// ListCollections returns the user's collections ordered by creation time,
// each with its ordered prompt IDs.
func (s *Store) ListCollections(ctx context.Context, userID string) ([]*domain.Collection, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collections []*domain.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range collections {
		c.PromptIDs, err = s.loadCollectionPromptIDs(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("load collection prompt ids for %s: %w", c.ID, err)
		}
	}
	return collections, nil
}

// UpdateCollection updates a collection's name and description. Membership is
// managed through AddPromptToCollection and RemovePromptFromCollection.
// Returns a NOT_FOUND error if the collection does not exist.
func (s *Store) UpdateCollection(ctx context.Context, c *domain.Collection) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE collections SET name = ?, description = ? WHERE id = ?`,
		c.Name, nullString(c.Description), c.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: collections.user_id, collections.name") {
			return domainerrors.DuplicateNamef("a collection named %q already exists", c.Name)
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domainerrors.NotFoundf("collection %q not found", c.ID)
	}
	return nil
}

// DeleteCollection performs a hard delete. The ON DELETE CASCADE on
// collection_prompts removes the prompt associations.
// Returns a NOT_FOUND error if the collection does not exist.
func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domainerrors.NotFoundf("collection %q not found", id)
	}
	return nil
}

// AddPromptToCollection appends a prompt to a collection.
// Uses INSERT OR IGNORE for idempotency, so adding a prompt twice keeps a
// single membership. Returns a NOT_FOUND error if either side is missing.
func (s *Store) AddPromptToCollection(ctx context.Context, collectionID, promptID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM collections WHERE id = ?`, collectionID).Scan(&exists)
	if err == sql.ErrNoRows {
		return domainerrors.NotFoundf("collection %q not found", collectionID)
	}
	if err != nil {
		return err
	}

	var maxOrder sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		`SELECT MAX(sort_order) FROM collection_prompts WHERE collection_id = ?`, collectionID).Scan(&maxOrder)
	if err != nil {
		return err
	}

	nextOrder := 0
	if maxOrder.Valid {
		nextOrder = int(maxOrder.Int64) + 1
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO collection_prompts (collection_id, prompt_id, sort_order)
		VALUES (?, ?, ?)`,
		collectionID, promptID, nextOrder,
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return domainerrors.NotFoundf("prompt %q not found", promptID)
		}
		return err
	}
	return nil
}

// RemovePromptFromCollection removes a prompt from a collection. Removing a
// prompt that is not a member is not an error.
// Returns a NOT_FOUND error if the collection does not exist.
func (s *Store) RemovePromptFromCollection(ctx context.Context, collectionID, promptID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM collections WHERE id = ?`, collectionID).Scan(&exists)
	if err == sql.ErrNoRows {
		return domainerrors.NotFoundf("collection %q not found", collectionID)
	}
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM collection_prompts WHERE collection_id = ? AND prompt_id = ?`,
		collectionID, promptID,
	)
	return err
}
