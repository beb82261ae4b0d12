// Package schedule maintains spaced repetition state per tracked content item
// and orders due reviews by priority.
package schedule

import (
	"time"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

// Status is the scheduling state of an entry. Reviewed is transient inside
// RecordOutcome and never persisted.
type Status string

const (
	StatusNew       Status = "new"
	StatusScheduled Status = "scheduled"
	StatusMastered  Status = "mastered"
)

// ReviewScheduleEntry is the spaced repetition record for one
// (user, content item) pair. Entries are never hard-deleted.
type ReviewScheduleEntry struct {
	ID                    int64            `db:"id"`
	UserID                string           `db:"user_id"`
	ContentID             string           `db:"content_id"`
	ContentType           string           `db:"content_type"`
	CategoryID            string           `db:"category_id"`
	Difficulty            event.Difficulty `db:"difficulty"`
	Status                Status           `db:"status"`
	MasteryLevel          float64          `db:"mastery_level"`
	ReviewCount           int              `db:"review_count"`
	ConsecutiveHighScores int              `db:"consecutive_high_scores"`
	IntervalDays          int              `db:"interval_days"`
	LastReviewDate        time.Time        `db:"last_review_date"`
	NextReviewDate        time.Time        `db:"next_review_date"`
	PriorityScore         float64          `db:"priority_score"`
	RetentionStrength     float64          `db:"retention_strength"`
}

// IsMastered reports whether the entry left active scheduling.
func (e *ReviewScheduleEntry) IsMastered() bool {
	return e.Status == StatusMastered
}
