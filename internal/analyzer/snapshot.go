// Package analyzer computes behavioral pattern summaries from a window of
// learning events. Every sub-algorithm is a pure function over the same
// immutable window; results are deterministic for identical input.
package analyzer

import (
	"time"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

// Level is the learner's difficulty progression level.
type Level string

const (
	LevelNovice       Level = "novice"
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// PatternSnapshot is the analyzer's output for one user at one point in time.
// Replaced wholesale on recomputation, never partially updated.
type PatternSnapshot struct {
	UserID      string
	GeneratedAt time.Time

	Frequency  FrequencyStats
	TimeOfDay  TimeOfDayStats
	Subjects   SubjectStats
	Difficulty DifficultyProgression
	Streaks    StreakStats
	Errors     ErrorStats
	Velocity   VelocityStats
	Retention  RetentionStats
}

// FrequencyStats summarizes study frequency over the window.
type FrequencyStats struct {
	TotalEvents           int
	ActiveDays            int
	AverageDailyQuestions float64
	// ConsistencyScore is max(0, 1 - stddev/mean) over daily counts.
	ConsistencyScore float64
}

// HourPerformance is accuracy and volume for one hour-of-day bucket.
type HourPerformance struct {
	Hour     int
	Events   int
	Accuracy float64
}

// TimeOfDayStats summarizes performance by hour of day.
type TimeOfDayStats struct {
	// BestPerformanceHours are up to three hours ranked by accuracy,
	// restricted to buckets with at least three events.
	BestPerformanceHours []int
	// PeakFocusHour maximizes volume x accuracy; -1 when the window is empty.
	PeakFocusHour int
	Buckets       []HourPerformance
}

// SubjectPerformance is per-category accuracy and response time.
type SubjectPerformance struct {
	CategoryID        string
	Events            int
	Accuracy          float64
	AvgResponseTimeMs float64
}

// SubjectStats holds detected strengths and weaknesses. Categories meeting
// neither threshold are omitted from both lists.
type SubjectStats struct {
	Strengths  []SubjectPerformance
	Weaknesses []SubjectPerformance
}

// DifficultyProgression tracks the learner's current level, restricted to
// the most recent 50 events.
type DifficultyProgression struct {
	CurrentLevel         Level
	AccuracyByDifficulty map[event.Difficulty]float64
	ReadyForNextLevel    bool
}

// StreakStats summarizes consecutive-day study streaks.
type StreakStats struct {
	LongestDays int
	CurrentDays int
	AverageDays float64
}

// ErrorCombo is one (category, difficulty) pair with its error count.
type ErrorCombo struct {
	CategoryID string
	Difficulty event.Difficulty
	Count      int
}

// ErrorStats summarizes where mistakes concentrate.
type ErrorStats struct {
	// OverallErrorRate is incorrect / total over quiz events only.
	OverallErrorRate float64
	TopCombos        []ErrorCombo
}

// VelocityStats summarizes the accuracy trend across the window.
type VelocityStats struct {
	// Score is clamp(0.5 + 2*meanConsecutiveDelta, 0, 1); 0.5 is neutral.
	Score           float64
	Improving       bool
	ChunkAccuracies []float64
}

// RetentionStats is a coarse short-horizon retention proxy: accuracy over
// the last seven days only.
type RetentionStats struct {
	SevenDayAccuracy float64
	SampleSize       int
}

// emptySnapshot returns the well-defined all-default snapshot for a user.
func emptySnapshot(userID string, now time.Time) PatternSnapshot {
	return PatternSnapshot{
		UserID:      userID,
		GeneratedAt: now,
		Frequency:   FrequencyStats{},
		TimeOfDay: TimeOfDayStats{
			BestPerformanceHours: []int{},
			PeakFocusHour:        -1,
			Buckets:              []HourPerformance{},
		},
		Subjects: SubjectStats{
			Strengths:  []SubjectPerformance{},
			Weaknesses: []SubjectPerformance{},
		},
		Difficulty: DifficultyProgression{
			CurrentLevel:         LevelNovice,
			AccuracyByDifficulty: map[event.Difficulty]float64{},
		},
		Streaks: StreakStats{},
		Errors: ErrorStats{
			TopCombos: []ErrorCombo{},
		},
		Velocity: VelocityStats{
			Score:           0.5,
			ChunkAccuracies: []float64{},
		},
		Retention: RetentionStats{},
	}
}
