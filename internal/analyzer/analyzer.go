package analyzer

import (
	"sort"
	"time"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

// Analyzer computes pattern snapshots. The clock is injected so streak and
// retention calculations are testable against a fixed "today".
type Analyzer struct {
	now func() time.Time
}

// New creates an Analyzer using the system clock.
func New() *Analyzer {
	return NewWithClock(time.Now)
}

// NewWithClock creates an Analyzer with an injected clock.
func NewWithClock(now func() time.Time) *Analyzer {
	return &Analyzer{now: now}
}

// Analyze computes a full pattern snapshot from the supplied event window.
// It never fails: an empty or nil window yields the all-default snapshot.
// The window is not mutated; events are copied before sorting.
func (a *Analyzer) Analyze(userID string, window []event.LearningEvent) PatternSnapshot {
	now := a.now()
	if len(window) == 0 {
		return emptySnapshot(userID, now)
	}

	// Chronological copy shared by every sub-algorithm.
	events := make([]event.LearningEvent, len(window))
	copy(events, window)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})

	return PatternSnapshot{
		UserID:      userID,
		GeneratedAt: now,
		Frequency:   calculateFrequency(events),
		TimeOfDay:   calculateTimeOfDay(events),
		Subjects:    calculateSubjects(events),
		Difficulty:  calculateDifficultyProgression(events),
		Streaks:     calculateStreaks(events, now),
		Errors:      calculateErrors(events),
		Velocity:    calculateVelocity(events),
		Retention:   calculateRetention(events, now),
	}
}

// accuracyOf returns the fraction of correct events, 0 for an empty slice.
func accuracyOf(events []event.LearningEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	correct := 0
	for _, e := range events {
		if e.IsCorrect {
			correct++
		}
	}
	return float64(correct) / float64(len(events))
}

// dayKey formats an event timestamp as a calendar day.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
