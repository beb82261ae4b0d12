package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/taxonomy"
)

// RawQuizAnswer is a quiz source record before normalization.
type RawQuizAnswer struct {
	UserID         string    `json:"user_id" validate:"required"`
	QuestionID     string    `json:"question_id" validate:"required"`
	Category       string    `json:"category" validate:"required"`
	Difficulty     string    `json:"difficulty" validate:"required,oneof=easy medium hard"`
	IsCorrect      bool      `json:"is_correct"`
	ResponseTimeMs int       `json:"response_time_ms" validate:"gte=0"`
	AnsweredAt     time.Time `json:"answered_at" validate:"required"`
}

// RawCourseSession is a course-session source record before normalization.
type RawCourseSession struct {
	UserID      string    `json:"user_id" validate:"required"`
	SessionID   string    `json:"session_id" validate:"required"`
	Theme       string    `json:"theme" validate:"required"`
	Difficulty  string    `json:"difficulty" validate:"required,oneof=basic intermediate advanced expert"`
	DurationMs  int       `json:"duration_ms" validate:"gte=0"`
	CompletedAt time.Time `json:"completed_at" validate:"required"`
}

// ErrInvalidRecord marks a source record that violates the ingestion contract
// (negative response time, missing timestamp). This class is fatal at
// ingestion and must not reach downstream aggregates.
var ErrInvalidRecord = errors.New("source record violates ingestion contract")

// Normalizer converts heterogeneous source records into LearningEvents,
// resolving raw category strings through the taxonomy collaborator.
// Events whose category cannot be resolved are dropped and logged.
type Normalizer struct {
	resolver taxonomy.Resolver
	validate *validator.Validate
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer(resolver taxonomy.Resolver) *Normalizer {
	return &Normalizer{
		resolver: resolver,
		validate: validator.New(),
	}
}

// NormalizeQuizAnswer converts a raw quiz answer into a LearningEvent.
// Returns (nil, nil) when the category is unresolved: the record is dropped,
// not failed.
func (n *Normalizer) NormalizeQuizAnswer(ctx context.Context, raw RawQuizAnswer) (*LearningEvent, error) {
	if err := n.validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	categoryID, err := n.resolver.Resolve(ctx, raw.Category)
	if errors.Is(err, taxonomy.ErrUnresolved) {
		slog.Warn("dropping quiz answer with unresolved category",
			"userId", raw.UserID,
			"questionId", raw.QuestionID,
			"category", raw.Category)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolver.Resolve > %w", err)
	}

	return &LearningEvent{
		UserID:         raw.UserID,
		ContentID:      raw.QuestionID,
		CategoryID:     categoryID,
		Difficulty:     Difficulty(raw.Difficulty),
		IsCorrect:      raw.IsCorrect,
		ResponseTimeMs: raw.ResponseTimeMs,
		Timestamp:      raw.AnsweredAt,
		SessionType:    SessionTypeQuiz,
	}, nil
}

// NormalizeCourseSession converts a completed course session into a
// LearningEvent. Course completions carry no correctness signal; they
// count as correct for frequency and streak purposes.
func (n *Normalizer) NormalizeCourseSession(ctx context.Context, raw RawCourseSession) (*LearningEvent, error) {
	if err := n.validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	categoryID, err := n.resolver.Resolve(ctx, raw.Theme)
	if errors.Is(err, taxonomy.ErrUnresolved) {
		slog.Warn("dropping course session with unresolved theme",
			"userId", raw.UserID,
			"sessionId", raw.SessionID,
			"theme", raw.Theme)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolver.Resolve > %w", err)
	}

	return &LearningEvent{
		UserID:         raw.UserID,
		ContentID:      raw.SessionID,
		CategoryID:     categoryID,
		Difficulty:     Difficulty(raw.Difficulty),
		IsCorrect:      true,
		ResponseTimeMs: raw.DurationMs,
		Timestamp:      raw.CompletedAt,
		SessionType:    SessionTypeCourse,
	}, nil
}
