package event

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/event/mock_repository.go -package=mock_event

// maxWindowSize caps the recent-events query. Analyses are bounded by this
// rolling window regardless of how much history a user has.
const maxWindowSize = 500

// Repository defines read and write operations for learning events.
type Repository interface {
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]LearningEvent, error)
	Create(ctx context.Context, e *LearningEvent) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindRecentByUser returns the user's most recent events, newest first.
// limit is capped to the rolling window of 500 records.
func (r *DBRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]LearningEvent, error) {
	if limit <= 0 || limit > maxWindowSize {
		limit = maxWindowSize
	}

	var events []LearningEvent
	if err := r.db.SelectContext(ctx, &events,
		"SELECT * FROM learning_events WHERE user_id = ? ORDER BY occurred_at DESC LIMIT ?",
		userID, limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(learning_events) > %w", err)
	}
	return events, nil
}

// Create inserts a new learning event.
func (r *DBRepository) Create(ctx context.Context, e *LearningEvent) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO learning_events (user_id, content_id, category_id, difficulty, is_correct, response_time_ms, occurred_at, session_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.ContentID, e.CategoryID, e.Difficulty, e.IsCorrect,
		e.ResponseTimeMs, e.Timestamp, e.SessionType)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert learning_event) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	e.ID = id
	return nil
}
