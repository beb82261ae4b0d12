// Package testutil provides shared test fixtures for building learning
// event windows.
package testutil

import (
	"fmt"
	"time"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

// EventOption configures optional fields of a fixture event.
type EventOption func(*event.LearningEvent)

// WithResponseTime sets the response time in milliseconds.
func WithResponseTime(ms int) EventOption {
	return func(e *event.LearningEvent) {
		e.ResponseTimeMs = ms
	}
}

// WithContentID sets the content id.
func WithContentID(contentID string) EventOption {
	return func(e *event.LearningEvent) {
		e.ContentID = contentID
	}
}

// WithSessionType sets the session type.
func WithSessionType(sessionType event.SessionType) EventOption {
	return func(e *event.LearningEvent) {
		e.SessionType = sessionType
	}
}

// QuizEvent builds a quiz learning event fixture.
func QuizEvent(userID, categoryID string, difficulty event.Difficulty, correct bool, at time.Time, opts ...EventOption) event.LearningEvent {
	e := event.LearningEvent{
		UserID:         userID,
		ContentID:      fmt.Sprintf("content-%s-%d", categoryID, at.Unix()),
		CategoryID:     categoryID,
		Difficulty:     difficulty,
		IsCorrect:      correct,
		ResponseTimeMs: 3000,
		Timestamp:      at,
		SessionType:    event.SessionTypeQuiz,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// DailyWindow builds one correct quiz event per day for the given number of
// consecutive days, ending on endDay. Useful for streak fixtures.
func DailyWindow(userID, categoryID string, days int, endDay time.Time) []event.LearningEvent {
	events := make([]event.LearningEvent, 0, days)
	for i := days - 1; i >= 0; i-- {
		at := endDay.AddDate(0, 0, -i)
		events = append(events, QuizEvent(userID, categoryID, event.DifficultyMedium, true, at))
	}
	return events
}
