// Package event provides the normalized learning event model and its ingestion boundary.
package event

import "time"

// SessionType identifies the source of a learning event.
type SessionType string

const (
	SessionTypeQuiz   SessionType = "quiz"
	SessionTypeCourse SessionType = "course"
)

// Difficulty is an ordinal difficulty label.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"

	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// Rank returns the ordinal position of a difficulty within its scale,
// starting at 1. Unknown difficulties rank 0.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy, DifficultyBasic:
		return 1
	case DifficultyMedium, DifficultyIntermediate:
		return 2
	case DifficultyHard, DifficultyAdvanced:
		return 3
	case DifficultyExpert:
		return 4
	}
	return 0
}

// LearningEvent is one answered question or one completed study unit.
// Immutable after creation by the Normalizer.
type LearningEvent struct {
	ID             int64       `db:"id"`
	UserID         string      `db:"user_id"`
	ContentID      string      `db:"content_id"`
	CategoryID     string      `db:"category_id"`
	Difficulty     Difficulty  `db:"difficulty"`
	IsCorrect      bool        `db:"is_correct"`
	ResponseTimeMs int         `db:"response_time_ms"`
	Timestamp      time.Time   `db:"occurred_at"`
	SessionType    SessionType `db:"session_type"`
}
