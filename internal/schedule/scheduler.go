package schedule

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/forgetting"
)

const (
	// successThreshold splits a review outcome into success and lapse.
	successThreshold = 0.6

	masteryThreshold      = 0.9
	highScore             = 0.9
	masteryStreakRequired = 5

	// relapseRetention is the predicted retention below which a mastered
	// item re-enters active scheduling.
	relapseRetention = 0.5

	maxIntervalDays = 365

	// masteryWeight trades days of overdue against weakness when ranking
	// due reviews.
	masteryWeight = 10.0
)

// Scheduler drives the review state machine over persisted entries.
type Scheduler struct {
	repository Repository
	now        func() time.Time
}

func NewScheduler(repository Repository) *Scheduler {
	return NewSchedulerWithClock(repository, time.Now)
}

func NewSchedulerWithClock(repository Repository, now func() time.Time) *Scheduler {
	return &Scheduler{
		repository: repository,
		now:        now,
	}
}

// AddItem starts tracking a content item. The entry is created already
// scheduled, with the first review due after the user's first interval.
// Adding an item that is already tracked returns the existing entry.
func (s *Scheduler) AddItem(
	ctx context.Context,
	userID, contentID, categoryID string,
	initialDifficulty event.Difficulty,
	params forgetting.Parameters,
) (*ReviewScheduleEntry, error) {
	existing, err := s.repository.FindByUserAndContent(ctx, userID, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up schedule entry: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	now := s.now()
	interval := params.IntervalAfter(0)
	entry := &ReviewScheduleEntry{
		UserID:            userID,
		ContentID:         contentID,
		ContentType:       string(event.SessionTypeQuiz),
		CategoryID:        categoryID,
		Difficulty:        initialDifficulty,
		Status:            StatusScheduled,
		IntervalDays:      interval,
		LastReviewDate:    now,
		NextReviewDate:    now.AddDate(0, 0, interval),
		RetentionStrength: params.PredictRetention(float64(interval)),
	}

	id, err := s.repository.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule entry: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// RecordOutcome applies one review result and reschedules the entry.
// performanceScore is in [0, 1].
func (s *Scheduler) RecordOutcome(
	ctx context.Context,
	userID, contentID string,
	performanceScore float64,
	responseTimeMs int,
	params forgetting.Parameters,
) (*ReviewScheduleEntry, error) {
	entry, err := s.repository.FindByUserAndContent(ctx, userID, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up schedule entry: %w", err)
	}
	if entry == nil {
		return nil, fmt.Errorf("no schedule entry for content %q", contentID)
	}

	applyOutcome(entry, performanceScore, params, s.now())

	if err := s.repository.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update schedule entry: %w", err)
	}
	return entry, nil
}

// GetDueReviews returns at most limit entries due now, weakest and most
// overdue first. Mastered entries re-enter only once their predicted
// retention has decayed below the relapse threshold.
func (s *Scheduler) GetDueReviews(
	ctx context.Context,
	userID string,
	limit int,
	params forgetting.Parameters,
) ([]ReviewScheduleEntry, error) {
	now := s.now()

	due, err := s.repository.FindDueByUser(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find due entries: %w", err)
	}

	mastered, err := s.repository.FindMasteredByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find mastered entries: %w", err)
	}
	for _, entry := range mastered {
		elapsed := now.Sub(entry.LastReviewDate).Hours() / 24
		if params.PredictRetention(elapsed) < relapseRetention {
			due = append(due, entry)
		}
	}

	for i := range due {
		due[i].PriorityScore = priorityScore(&due[i], now)
	}
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].PriorityScore != due[j].PriorityScore {
			return due[i].PriorityScore > due[j].PriorityScore
		}
		return due[i].NextReviewDate.Before(due[j].NextReviewDate)
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// applyOutcome is the pure state transition for one review result.
func applyOutcome(entry *ReviewScheduleEntry, performanceScore float64, params forgetting.Parameters, now time.Time) {
	if performanceScore < 0 {
		performanceScore = 0
	}
	if performanceScore > 1 {
		performanceScore = 1
	}

	succeeded := performanceScore >= successThreshold
	previousStreak := entry.ConsecutiveHighScores

	entry.ReviewCount++

	if succeeded {
		gain := (1 - entry.MasteryLevel) * 0.5 * performanceScore
		entry.MasteryLevel = math.Min(entry.MasteryLevel+gain, 1)
		if performanceScore >= highScore {
			entry.ConsecutiveHighScores++
		} else {
			entry.ConsecutiveHighScores = 0
		}
		entry.IntervalDays = nextInterval(entry.IntervalDays, entry.ReviewCount, performanceScore, params)
	} else {
		entry.MasteryLevel = math.Max(entry.MasteryLevel*0.7, 0)
		entry.ConsecutiveHighScores = 0
		entry.IntervalDays = lapseInterval(entry.IntervalDays, previousStreak)
	}

	entry.LastReviewDate = now
	entry.NextReviewDate = now.AddDate(0, 0, entry.IntervalDays)
	entry.RetentionStrength = params.PredictRetention(float64(entry.IntervalDays))

	if entry.MasteryLevel > masteryThreshold && entry.ConsecutiveHighScores >= masteryStreakRequired {
		entry.Status = StatusMastered
	} else {
		entry.Status = StatusScheduled
	}
}

// nextInterval grows the interval on success: the fitted ladder for early
// reviews, then multiplicative growth scaled by performance, bounded.
func nextInterval(lastInterval, reviewCount int, performanceScore float64, params forgetting.Parameters) int {
	// AddItem consumed the first ladder step; the nth review lands on step n.
	if reviewCount < len(params.OptimalIntervals) {
		return params.IntervalAfter(reviewCount)
	}

	if lastInterval < 1 {
		lastInterval = 1
	}
	factor := 1.3 + performanceScore
	interval := int(math.Ceil(float64(lastInterval) * factor))
	if interval > maxIntervalDays {
		return maxIntervalDays
	}
	return interval
}

// lapseInterval shortens the interval on failure. Early items reset fully;
// well-established items keep part of their progress.
func lapseInterval(lastInterval, previousStreak int) int {
	if previousStreak <= 2 {
		return 1
	}

	var multiplier float64
	switch {
	case previousStreak >= 10:
		multiplier = 0.7
	case previousStreak >= 6:
		multiplier = 0.6
	default:
		multiplier = 0.5
	}

	interval := int(math.Ceil(float64(lastInterval) * multiplier))
	if interval < 1 {
		return 1
	}
	return interval
}

func priorityScore(entry *ReviewScheduleEntry, now time.Time) float64 {
	overdueDays := now.Sub(entry.NextReviewDate).Hours() / 24
	if overdueDays < 0 {
		overdueDays = 0
	}
	return overdueDays + (1-entry.MasteryLevel)*masteryWeight
}
