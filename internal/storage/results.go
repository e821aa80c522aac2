package storage

import (
	"context"
	"fmt"
	"strings"

	"nuclight.org/squashbot/internal/game"
)

// ResultRepository journals results accepted by the league.
type ResultRepository struct {
	db *DB
}

func NewResultRepository(db *DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsPublished reports whether a result with this fingerprint was already posted.
func (r *ResultRepository) IsPublished(ctx context.Context, fingerprint string) (bool, error) {
	var exists bool
	err := r.db.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM published_results WHERE fingerprint = ?)
	`, fingerprint).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check published result: %w", err)
	}
	return exists, nil
}

// RecordPublished stores a published result. Recording the same fingerprint
// twice is not an error.
func (r *ResultRepository) RecordPublished(ctx context.Context, res game.PublishedResult) error {
	p := res.Payload
	_, err := r.db.db.ExecContext(ctx, `
		INSERT INTO published_results (
			fingerprint, league_id, player1_id, player2_id, score1, score2,
			location_id, end_datetime, tg_chat_id, tg_user_id, submitter, published_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, res.Fingerprint, p.League, p.Player1, p.Player2, p.Score1, p.Score2,
		p.Location, p.EndDatetime, res.ChatID, res.UserID, res.Submitter, res.PublishedAt)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return fmt.Errorf("insert published result: %w", err)
	}
	return nil
}

var _ game.Journal = (*ResultRepository)(nil)
