// Package forgetting models per-user retention decay over time since last
// exposure, partially reversed by review.
package forgetting

import (
	"math"
	"sort"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

const (
	// DefaultDecayRate is the population-average decay used when a user has
	// no review history to fit against.
	DefaultDecayRate = 0.5

	minDecayRate = 0.05
	maxDecayRate = 2.0

	minConsolidation = 0.6
	maxConsolidation = 1.4
)

// baseIntervals are the unscaled review intervals in days.
var baseIntervals = []int{1, 3, 7, 14, 30}

// Parameters is a per-user retention curve: R(t) = e^(-decayRate * t),
// with review intervals stretched by the consolidation factor.
type Parameters struct {
	DecayRate           float64
	ConsolidationFactor float64
	RetentionAt24h      float64
	RetentionAt7d       float64
	OptimalIntervals    []int
}

// ReviewOutcome is one historical review: how long after the previous
// exposure it happened and whether it succeeded.
type ReviewOutcome struct {
	ElapsedDays float64
	Correct     bool
}

// DefaultParameters returns the population-average curve.
func DefaultParameters() Parameters {
	return newParameters(DefaultDecayRate, 1.0)
}

// NewParameters rebuilds a full curve from the two persisted fields:
// decay rate and consolidation factor. Out-of-range values fall back to
// the population defaults.
func NewParameters(decayRate, consolidation float64) Parameters {
	if decayRate <= 0 {
		decayRate = DefaultDecayRate
	}
	if consolidation <= 0 {
		consolidation = 1.0
	}
	return newParameters(decayRate, consolidation)
}

func newParameters(decayRate, consolidation float64) Parameters {
	intervals := make([]int, len(baseIntervals))
	previous := 0
	for i, base := range baseIntervals {
		scaled := int(math.Round(float64(base) * consolidation))
		if scaled <= previous {
			scaled = previous + 1
		}
		intervals[i] = scaled
		previous = scaled
	}

	return Parameters{
		DecayRate:           decayRate,
		ConsolidationFactor: consolidation,
		RetentionAt24h:      math.Exp(-decayRate * 1),
		RetentionAt7d:       math.Exp(-decayRate * 7),
		OptimalIntervals:    intervals,
	}
}

// Fit estimates a user's curve from historical review outcomes. Two users
// with the same event count can receive different curves. With no usable
// outcomes it falls back to population defaults.
func Fit(outcomes []ReviewOutcome) Parameters {
	// Decay: bucket outcomes by elapsed days and infer a rate from the
	// observed accuracy at each elapsed distance, R(t) = e^(-k*t).
	type bucket struct {
		total   int
		correct int
	}
	buckets := make(map[int]*bucket)
	repeatTotal := 0
	repeatCorrect := 0
	for _, o := range outcomes {
		if o.ElapsedDays <= 0 {
			continue
		}
		day := int(math.Ceil(o.ElapsedDays))
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		b.total++
		if o.Correct {
			b.correct++
		}
		repeatTotal++
		if o.Correct {
			repeatCorrect++
		}
	}

	if len(buckets) == 0 {
		return DefaultParameters()
	}

	days := make([]int, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Ints(days)

	var weightedRate, weight float64
	for _, day := range days {
		b := buckets[day]
		accuracy := float64(b.correct) / float64(b.total)
		// Clamp so log stays finite at the extremes.
		accuracy = math.Min(math.Max(accuracy, 0.05), 0.99)
		rate := -math.Log(accuracy) / float64(day)
		weightedRate += rate * float64(b.total)
		weight += float64(b.total)
	}
	decayRate := weightedRate / weight
	decayRate = math.Min(math.Max(decayRate, minDecayRate), maxDecayRate)

	// Consolidation: learners who succeed on spaced reviews earn longer
	// intervals; failures pull intervals back toward the base schedule.
	repeatAccuracy := float64(repeatCorrect) / float64(repeatTotal)
	consolidation := 0.6 + 0.8*repeatAccuracy
	consolidation = math.Min(math.Max(consolidation, minConsolidation), maxConsolidation)

	return newParameters(decayRate, consolidation)
}

// PredictRetention returns the probability of recall after the given number
// of days since last exposure, in [0, 1].
func (p Parameters) PredictRetention(daysSinceLearning float64) float64 {
	if daysSinceLearning <= 0 {
		return 1.0
	}
	decay := p.DecayRate
	if decay <= 0 {
		decay = DefaultDecayRate
	}
	retention := math.Exp(-decay * daysSinceLearning)
	if retention > 1 {
		return 1
	}
	if retention < 0 {
		return 0
	}
	return retention
}

// IntervalAfter returns the optimal review interval in days after the given
// number of completed reviews. Review counts past the schedule reuse the
// final interval.
func (p Parameters) IntervalAfter(reviewCount int) int {
	if len(p.OptimalIntervals) == 0 {
		return baseIntervals[0]
	}
	if reviewCount < 0 {
		reviewCount = 0
	}
	if reviewCount >= len(p.OptimalIntervals) {
		return p.OptimalIntervals[len(p.OptimalIntervals)-1]
	}
	return p.OptimalIntervals[reviewCount]
}

// OutcomesFromEvents derives review outcomes from a user's event window by
// pairing repeated exposures to the same content and measuring the gap.
func OutcomesFromEvents(events []event.LearningEvent) []ReviewOutcome {
	ordered := make([]event.LearningEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	lastSeen := make(map[string]int)
	outcomes := make([]ReviewOutcome, 0)
	for i, e := range ordered {
		if prev, ok := lastSeen[e.ContentID]; ok {
			elapsed := e.Timestamp.Sub(ordered[prev].Timestamp).Hours() / 24
			if elapsed > 0 {
				outcomes = append(outcomes, ReviewOutcome{
					ElapsedDays: elapsed,
					Correct:     e.IsCorrect,
				})
			}
		}
		lastSeen[e.ContentID] = i
	}
	return outcomes
}
