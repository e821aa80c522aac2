package storage

import (
	"context"
	"fmt"

	"nuclight.org/squashbot/internal/game"
)

// PreferenceRepository keeps per-user choice counters in sqlite.
type PreferenceRepository struct {
	db *DB
}

func NewPreferenceRepository(db *DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// IncrementScore adds one use of name for the user.
func (r *PreferenceRepository) IncrementScore(ctx context.Context, userID int64, category game.Category, name string) error {
	_, err := r.db.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, category, name, score, updated_at)
		VALUES (?, ?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, category, name)
		DO UPDATE SET score = score + 1, updated_at = CURRENT_TIMESTAMP
	`, userID, string(category), name)
	if err != nil {
		return fmt.Errorf("increment preference: %w", err)
	}
	return nil
}

// TopScored returns up to limit names, most used first. Equal scores are
// ordered by name.
func (r *PreferenceRepository) TopScored(ctx context.Context, userID int64, category game.Category, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.db.db.QueryContext(ctx, `
		SELECT name
		FROM preferences
		WHERE user_id = ? AND category = ?
		ORDER BY score DESC, name ASC
		LIMIT ?
	`, userID, string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("query preferences: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan preference: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

var _ game.PreferenceStore = (*PreferenceRepository)(nil)
