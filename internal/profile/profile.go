// Package profile maintains the slow-changing per-user learning aggregate.
// Unlike the per-request pattern snapshot, the profile persists across
// sessions and is refreshed only by explicit recompute calls.
package profile

import (
	"time"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/analyzer"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/cognitive"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/forgetting"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/recommend"
)

// Chronotype is the coarse daily rhythm a user's peak hours fall into.
type Chronotype string

const (
	ChronotypeMorning Chronotype = "morning"
	ChronotypeDaytime Chronotype = "daytime"
	ChronotypeEvening Chronotype = "evening"
	ChronotypeNight   Chronotype = "night"
)

// UserLearningProfile aggregates long-run behavior for one user.
type UserLearningProfile struct {
	UserID                  string     `db:"user_id"`
	AttentionSpanMinutes    int        `db:"attention_span_minutes"`
	OptimalSessionMinutes   int        `db:"optimal_session_minutes"`
	Chronotype              Chronotype `db:"chronotype"`
	PeakHour                int        `db:"peak_hour"`
	CognitiveLoadTolerance  float64    `db:"cognitive_load_tolerance"`
	DecayRate               float64    `db:"decay_rate"`
	ConsolidationFactor     float64    `db:"consolidation_factor"`
	PreferredFlowDifficulty float64    `db:"preferred_flow_difficulty"`
	RecomputedAt            time.Time  `db:"recomputed_at"`
}

// DefaultProfile is the population-average profile used before a user has
// any aggregated history.
func DefaultProfile(userID string, now time.Time) UserLearningProfile {
	params := forgetting.DefaultParameters()
	return UserLearningProfile{
		UserID:                  userID,
		AttentionSpanMinutes:    25,
		OptimalSessionMinutes:   25,
		Chronotype:              ChronotypeDaytime,
		PeakHour:                9,
		CognitiveLoadTolerance:  5.0,
		DecayRate:               params.DecayRate,
		ConsolidationFactor:     params.ConsolidationFactor,
		PreferredFlowDifficulty: 0.5,
		RecomputedAt:            now,
	}
}

// Recompute derives a fresh profile from a pattern snapshot and the user's
// event window. Call it on an explicit trigger; never per event.
func Recompute(userID string, snapshot analyzer.PatternSnapshot, window []event.LearningEvent, now time.Time) UserLearningProfile {
	p := DefaultProfile(userID, now)

	params := forgetting.Fit(forgetting.OutcomesFromEvents(window))
	p.DecayRate = params.DecayRate
	p.ConsolidationFactor = params.ConsolidationFactor

	p.OptimalSessionMinutes = recommend.SessionLength(snapshot)
	p.AttentionSpanMinutes = attentionSpan(window)

	if snapshot.TimeOfDay.PeakFocusHour >= 0 {
		p.PeakHour = snapshot.TimeOfDay.PeakFocusHour
		p.Chronotype = chronotypeOf(snapshot.TimeOfDay.PeakFocusHour)
	}

	p.CognitiveLoadTolerance = loadTolerance(window)
	p.PreferredFlowDifficulty = preferredDifficulty(snapshot)

	return p
}

// attentionSpan estimates sustained focus from same-day bursts of events:
// the average span between the first and last event of each active day,
// bounded to a sane range.
func attentionSpan(window []event.LearningEvent) int {
	type daySpan struct {
		first time.Time
		last  time.Time
	}
	days := make(map[string]*daySpan)
	for _, e := range window {
		key := e.Timestamp.Format("2006-01-02")
		span := days[key]
		if span == nil {
			days[key] = &daySpan{first: e.Timestamp, last: e.Timestamp}
			continue
		}
		if e.Timestamp.Before(span.first) {
			span.first = e.Timestamp
		}
		if e.Timestamp.After(span.last) {
			span.last = e.Timestamp
		}
	}
	if len(days) == 0 {
		return 25
	}

	var totalMinutes float64
	for _, span := range days {
		totalMinutes += span.last.Sub(span.first).Minutes()
	}
	avg := int(totalMinutes / float64(len(days)))
	if avg < 10 {
		return 10
	}
	if avg > 90 {
		return 90
	}
	return avg
}

// loadTolerance estimates how much cognitive load the user absorbs while
// still answering correctly, on the same 0 to 10 scale as the load score.
func loadTolerance(window []event.LearningEvent) float64 {
	var sum float64
	var n int
	for _, e := range window {
		if !e.IsCorrect {
			continue
		}
		sum += cognitive.ScoreCognitiveLoad(1.0, e.ResponseTimeMs, e.Difficulty, 1, 0)
		n++
	}
	if n == 0 {
		return 5.0
	}
	return sum / float64(n)
}

// preferredDifficulty maps the current progression level onto the challenge
// scale used by the flow estimator.
func preferredDifficulty(snapshot analyzer.PatternSnapshot) float64 {
	switch snapshot.Difficulty.CurrentLevel {
	case analyzer.LevelBeginner:
		return 0.4
	case analyzer.LevelIntermediate:
		return 0.6
	case analyzer.LevelAdvanced:
		return 0.8
	default:
		return 0.25
	}
}

func chronotypeOf(hour int) Chronotype {
	switch {
	case hour >= 5 && hour < 11:
		return ChronotypeMorning
	case hour >= 11 && hour < 17:
		return ChronotypeDaytime
	case hour >= 17 && hour < 23:
		return ChronotypeEvening
	default:
		return ChronotypeNight
	}
}
