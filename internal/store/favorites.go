package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/promptdeckapp/promptdeck/internal/domain"
	domainerrors "github.com/promptdeckapp/promptdeck/internal/errors"
)

// ListFavoriteIDs returns the prompt IDs a user has favorited, in the order
// they were added.
func (s *Store) ListFavoriteIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT prompt_id FROM favorites WHERE user_id = ? ORDER BY sort_order`, userID)
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

// ListFavoritePrompts returns the full prompt records a user has favorited,
// in the order they were added.
func (s *Store) ListFavoritePrompts(ctx context.Context, userID string) ([]*domain.Prompt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+promptColumnsAliased+`
		FROM favorites f
		JOIN prompts p ON p.id = f.prompt_id
		WHERE f.user_id = ?
		ORDER BY f.sort_order`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prompts := []*domain.Prompt{}
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

// AddFavorite marks a prompt as a favorite of the user. Adding an existing
// favorite is a no-op, so the call is idempotent.
// Returns a NOT_FOUND error if the prompt does not exist.
func (s *Store) AddFavorite(ctx context.Context, userID, promptID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM prompts WHERE id = ?`, promptID).Scan(&exists)
	if err == sql.ErrNoRows {
		return domainerrors.NotFoundf("prompt %q not found", promptID)
	}
	if err != nil {
		return err
	}

	var maxOrder sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		`SELECT MAX(sort_order) FROM favorites WHERE user_id = ?`, userID).Scan(&maxOrder)
	if err != nil {
		return err
	}

	nextOrder := 0
	if maxOrder.Valid {
		nextOrder = int(maxOrder.Int64) + 1
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO favorites (user_id, prompt_id, created_at, sort_order)
		VALUES (?, ?, ?, ?)`,
		userID, promptID, formatTime(time.Now()), nextOrder,
	)
	return err
}

// RemoveFavorite unmarks a favorite. Removing an absent favorite is a no-op.
func (s *Store) RemoveFavorite(ctx context.Context, userID, promptID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND prompt_id = ?`,
		userID, promptID,
	)
	return err
}

// ClearFavorites removes every favorite of the user and reports how many
// were removed.
func (s *Store) ClearFavorites(ctx context.Context, userID string) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// IsFavorited reports whether the user has favorited the prompt.
func (s *Store) IsFavorited(ctx context.Context, userID, promptID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM favorites WHERE user_id = ? AND prompt_id = ?`,
		userID, promptID).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
