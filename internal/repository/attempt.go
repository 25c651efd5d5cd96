package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/superfruitcenter/fruitmart/internal/models"
	"github.com/superfruitcenter/fruitmart/internal/repository/postgres"
)

const (
	upsertAttemptQuery = `
						INSERT INTO order_attempts (user_id, attempt_number, draft, started_at)
						VALUES ($1, $2, $3, $4)
						ON CONFLICT (user_id) DO UPDATE
						SET attempt_number = EXCLUDED.attempt_number, draft = EXCLUDED.draft, started_at = EXCLUDED.started_at
`
	selectAttemptQuery = `
						SELECT user_id, attempt_number, draft, started_at FROM order_attempts
						WHERE user_id = $1
`
	deleteAttemptQuery = `
						DELETE FROM order_attempts
						WHERE user_id = $1
`
	selectAttemptsQuery = `
						SELECT user_id, attempt_number, draft, started_at FROM order_attempts
						ORDER BY started_at
`
)

// AttemptRepository implements service.AttemptRepository interface.
// The journal keeps at most one in-flight placement record per user.
type AttemptRepository struct {
	db *postgres.DB
}

// NewAttemptRepository creates new AttemptRepository instance
func NewAttemptRepository(db *postgres.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// SaveAttempt stores or replaces the user's in-flight attempt record
func (ar *AttemptRepository) SaveAttempt(ctx context.Context, attempt models.OrderAttempt) error {
	draft, err := json.Marshal(attempt.Draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	_, err = ar.db.Exec(ctx, upsertAttemptQuery, attempt.UserID, attempt.AttemptNumber, draft, attempt.StartedAt)
	return err
}

// LoadAttempt returns the user's attempt record or ErrDataNotFound
func (ar *AttemptRepository) LoadAttempt(ctx context.Context, userID uuid.UUID) (*models.OrderAttempt, error) {
	var (
		attempt models.OrderAttempt
		draft   []byte
	)

	err := ar.db.QueryRow(ctx, selectAttemptQuery, userID).Scan(&attempt.UserID, &attempt.AttemptNumber, &draft, &attempt.StartedAt)
	if err != nil {
		if ar.db.IsNoRows(err) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(draft, &attempt.Draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}

	return &attempt, nil
}

// ClearAttempt removes the user's attempt record
func (ar *AttemptRepository) ClearAttempt(ctx context.Context, userID uuid.UUID) error {
	_, err := ar.db.Exec(ctx, deleteAttemptQuery, userID)
	return err
}

// PendingAttempts returns all journaled attempt records
func (ar *AttemptRepository) PendingAttempts(ctx context.Context) ([]models.OrderAttempt, error) {
	rows, err := ar.db.Query(ctx, selectAttemptsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := []models.OrderAttempt{}

	for rows.Next() {
		var (
			attempt models.OrderAttempt
			draft   []byte
		)
		if err := rows.Scan(&attempt.UserID, &attempt.AttemptNumber, &draft, &attempt.StartedAt); err != nil {
			continue
		}
		if err := json.Unmarshal(draft, &attempt.Draft); err != nil {
			continue
		}
		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return attempts, nil
}
