package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/schedule/mock_repository.go -package=mock_schedule

// Repository defines persistence for review schedule entries. Entries are
// only ever created and updated, never deleted.
type Repository interface {
	Create(ctx context.Context, entry *ReviewScheduleEntry) (int64, error)
	FindByUserAndContent(ctx context.Context, userID, contentID string) (*ReviewScheduleEntry, error)
	FindDueByUser(ctx context.Context, userID string, due time.Time) ([]ReviewScheduleEntry, error)
	FindMasteredByUser(ctx context.Context, userID string) ([]ReviewScheduleEntry, error)
	Update(ctx context.Context, entry *ReviewScheduleEntry) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts a new schedule entry and returns its id.
func (r *DBRepository) Create(ctx context.Context, entry *ReviewScheduleEntry) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO review_schedule_entries
		(user_id, content_id, content_type, category_id, difficulty, status, mastery_level,
		review_count, consecutive_high_scores, interval_days, last_review_date, next_review_date,
		priority_score, retention_strength)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.ContentID, entry.ContentType, entry.CategoryID, entry.Difficulty,
		entry.Status, entry.MasteryLevel, entry.ReviewCount, entry.ConsecutiveHighScores,
		entry.IntervalDays, entry.LastReviewDate, entry.NextReviewDate,
		entry.PriorityScore, entry.RetentionStrength)
	if err != nil {
		return 0, fmt.Errorf("db.ExecContext(insert review_schedule_entry) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("result.LastInsertId() > %w", err)
	}
	return id, nil
}

// FindByUserAndContent returns the entry for one content item, or nil when
// the item is not tracked.
func (r *DBRepository) FindByUserAndContent(ctx context.Context, userID, contentID string) (*ReviewScheduleEntry, error) {
	var entry ReviewScheduleEntry
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM review_schedule_entries WHERE user_id = ? AND content_id = ?",
		userID, contentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(review_schedule_entries) > %w", err)
	}
	return &entry, nil
}

// FindDueByUser returns actively scheduled entries due at or before the
// given time.
func (r *DBRepository) FindDueByUser(ctx context.Context, userID string, due time.Time) ([]ReviewScheduleEntry, error) {
	var entries []ReviewScheduleEntry
	if err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM review_schedule_entries
		WHERE user_id = ? AND status = ? AND next_review_date <= ?
		ORDER BY next_review_date ASC`,
		userID, StatusScheduled, due); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due review_schedule_entries) > %w", err)
	}
	return entries, nil
}

// FindMasteredByUser returns mastered entries. They stay queryable even
// though active scheduling skips them.
func (r *DBRepository) FindMasteredByUser(ctx context.Context, userID string) ([]ReviewScheduleEntry, error) {
	var entries []ReviewScheduleEntry
	if err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM review_schedule_entries WHERE user_id = ? AND status = ? ORDER BY last_review_date ASC",
		userID, StatusMastered); err != nil {
		return nil, fmt.Errorf("db.SelectContext(mastered review_schedule_entries) > %w", err)
	}
	return entries, nil
}

// Update persists the mutable scheduling state of an entry.
func (r *DBRepository) Update(ctx context.Context, entry *ReviewScheduleEntry) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE review_schedule_entries
		SET status = ?, mastery_level = ?, review_count = ?, consecutive_high_scores = ?,
		interval_days = ?, last_review_date = ?, next_review_date = ?,
		priority_score = ?, retention_strength = ?
		WHERE id = ?`,
		entry.Status, entry.MasteryLevel, entry.ReviewCount, entry.ConsecutiveHighScores,
		entry.IntervalDays, entry.LastReviewDate, entry.NextReviewDate,
		entry.PriorityScore, entry.RetentionStrength, entry.ID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update review_schedule_entry) > %w", err)
	}
	return nil
}
