// Package engine is the facade over analysis, scheduling and
// recommendations. Callers always receive a complete, typed result: storage
// failures degrade to population defaults instead of propagating.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/analyzer"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/cache"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/cognitive"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/config"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/forgetting"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/profile"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/recommend"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/schedule"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/taxonomy"
)

// Cache kinds. Each analysis result is cached separately per user.
const (
	kindSnapshot       = "pattern_snapshot"
	kindRecommendation = "recommendation"
)

// SnapshotResult wraps a pattern snapshot with its degradation state.
type SnapshotResult struct {
	Snapshot analyzer.PatternSnapshot
	// Degraded is set when event storage was unavailable and the snapshot
	// was computed from an empty window.
	Degraded bool
}

// RecommendationResult wraps a recommendation with its degradation state.
type RecommendationResult struct {
	Recommendation recommend.Recommendation
	Degraded       bool
}

// Engine wires the analysis pipeline together behind a small surface.
type Engine struct {
	events    event.Repository
	schedules schedule.Repository
	profiles  profile.Repository

	normalizer *event.Normalizer
	analyzer   *analyzer.Analyzer
	scheduler  *schedule.Scheduler
	generator  *recommend.Generator
	cache      cache.Cache

	windowSize        int
	snapshotTTL       time.Duration
	recommendationTTL time.Duration
	now               func() time.Time
}

// New builds an Engine from its collaborators.
func New(
	events event.Repository,
	schedules schedule.Repository,
	profiles profile.Repository,
	resolver taxonomy.Resolver,
	analysisCache cache.Cache,
	generator *recommend.Generator,
	cfg config.AnalyticsConfig,
) *Engine {
	return NewWithClock(events, schedules, profiles, resolver, analysisCache, generator, cfg, time.Now)
}

// NewWithClock is New with an injected clock for deterministic tests.
func NewWithClock(
	events event.Repository,
	schedules schedule.Repository,
	profiles profile.Repository,
	resolver taxonomy.Resolver,
	analysisCache cache.Cache,
	generator *recommend.Generator,
	cfg config.AnalyticsConfig,
	now func() time.Time,
) *Engine {
	return &Engine{
		events:            events,
		schedules:         schedules,
		profiles:          profiles,
		normalizer:        event.NewNormalizer(resolver),
		analyzer:          analyzer.NewWithClock(now),
		scheduler:         schedule.NewSchedulerWithClock(schedules, now),
		generator:         generator,
		cache:             analysisCache,
		windowSize:        cfg.EventWindowSize,
		snapshotTTL:       time.Duration(cfg.SnapshotTTLMinutes) * time.Minute,
		recommendationTTL: time.Duration(cfg.RecommendationTTLMinutes) * time.Minute,
		now:               now,
	}
}

// IngestResult reports what a batch ingestion did. Dropped counts records
// whose category did not resolve; those are logged, not failed.
type IngestResult struct {
	Stored  int
	Dropped int
}

// IngestQuizAnswers normalizes and stores a batch of quiz answer records.
// A record violating the ingestion contract fails the batch at that point;
// already-stored records stay stored.
func (e *Engine) IngestQuizAnswers(ctx context.Context, answers []event.RawQuizAnswer) (IngestResult, error) {
	var result IngestResult
	for _, raw := range answers {
		ev, err := e.normalizer.NormalizeQuizAnswer(ctx, raw)
		if err != nil {
			return result, fmt.Errorf("failed to normalize quiz answer %q: %w", raw.QuestionID, err)
		}
		if ev == nil {
			result.Dropped++
			continue
		}
		if err := e.events.Create(ctx, ev); err != nil {
			return result, fmt.Errorf("failed to store event for %q: %w", raw.QuestionID, err)
		}
		result.Stored++
	}
	return result, nil
}

// IngestCourseSessions normalizes and stores a batch of completed course
// sessions. Same batch semantics as IngestQuizAnswers.
func (e *Engine) IngestCourseSessions(ctx context.Context, sessions []event.RawCourseSession) (IngestResult, error) {
	var result IngestResult
	for _, raw := range sessions {
		ev, err := e.normalizer.NormalizeCourseSession(ctx, raw)
		if err != nil {
			return result, fmt.Errorf("failed to normalize course session %q: %w", raw.SessionID, err)
		}
		if ev == nil {
			result.Dropped++
			continue
		}
		if err := e.events.Create(ctx, ev); err != nil {
			return result, fmt.Errorf("failed to store event for %q: %w", raw.SessionID, err)
		}
		result.Stored++
	}
	return result, nil
}

// GetPatternSnapshot returns the user's behavioral snapshot, cached per the
// snapshot TTL. On storage failure it degrades to the empty-window snapshot
// rather than failing.
func (e *Engine) GetPatternSnapshot(ctx context.Context, userID string) SnapshotResult {
	if cached, ok := e.cache.Get(userID, kindSnapshot); ok {
		if result, ok := cached.(SnapshotResult); ok {
			return result
		}
	}

	window, degraded := e.eventWindow(ctx, userID)
	result := SnapshotResult{
		Snapshot: e.analyzer.Analyze(userID, window),
		Degraded: degraded,
	}
	if !degraded {
		e.cache.Set(userID, kindSnapshot, result, e.snapshotTTL)
	}
	return result
}

// GetOptimalLearningTime returns the study-parameter recommendation, cached
// per the recommendation TTL.
func (e *Engine) GetOptimalLearningTime(ctx context.Context, userID string) RecommendationResult {
	if cached, ok := e.cache.Get(userID, kindRecommendation); ok {
		if result, ok := cached.(RecommendationResult); ok {
			return result
		}
	}

	snapshot := e.GetPatternSnapshot(ctx, userID)
	result := RecommendationResult{
		Recommendation: e.generator.Generate(snapshot.Snapshot),
		Degraded:       snapshot.Degraded,
	}
	if !result.Degraded {
		e.cache.Set(userID, kindRecommendation, result, e.recommendationTTL)
	}
	return result
}

// GetPersonalizedHints returns textual study advice for the user. When
// contentID is set, hints for that content's category sort first.
func (e *Engine) GetPersonalizedHints(ctx context.Context, userID, contentID string) []recommend.Hint {
	snapshot := e.GetPatternSnapshot(ctx, userID)
	hints := e.generator.Hints(snapshot.Snapshot)
	if contentID == "" {
		return hints
	}

	category, err := e.categoryOf(ctx, userID, contentID)
	if err != nil || category == "" {
		return hints
	}

	ordered := make([]recommend.Hint, 0, len(hints))
	for _, hint := range hints {
		if hint.Category == category {
			ordered = append(ordered, hint)
		}
	}
	for _, hint := range hints {
		if hint.Category != category {
			ordered = append(ordered, hint)
		}
	}
	return ordered
}

// GetDueReviews returns up to limit due review entries for the user.
func (e *Engine) GetDueReviews(ctx context.Context, userID string, limit int) ([]schedule.ReviewScheduleEntry, error) {
	due, err := e.scheduler.GetDueReviews(ctx, userID, limit, e.curveParameters(ctx, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get due reviews: %w", err)
	}
	return due, nil
}

// RecordReviewOutcome applies one review result and returns the updated
// entry. Cached analyses are left to expire on their TTL.
func (e *Engine) RecordReviewOutcome(ctx context.Context, userID, contentID string, performanceScore float64, responseTimeMs int) (*schedule.ReviewScheduleEntry, error) {
	entry, err := e.scheduler.RecordOutcome(ctx, userID, contentID, performanceScore, responseTimeMs, e.curveParameters(ctx, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to record review outcome: %w", err)
	}
	return entry, nil
}

// TrackContent places a content item under spaced repetition.
func (e *Engine) TrackContent(ctx context.Context, userID, contentID, categoryID string, difficulty event.Difficulty) (*schedule.ReviewScheduleEntry, error) {
	entry, err := e.scheduler.AddItem(ctx, userID, contentID, categoryID, difficulty, e.curveParameters(ctx, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to track content: %w", err)
	}
	return entry, nil
}

// GetLiveFlowGuidance classifies in-session performance. Pure passthrough;
// callable mid-session with partial data.
func (e *Engine) GetLiveFlowGuidance(sessionID string, currentAccuracy, elapsedMinutes float64, recentResponseTimesMs []int) cognitive.LiveGuidance {
	return cognitive.ProvideLiveGuidance(sessionID, currentAccuracy, elapsedMinutes, recentResponseTimesMs)
}

// RecomputeProfile rebuilds and persists the user's long-run profile from
// the current window. Explicitly triggered, never per event.
func (e *Engine) RecomputeProfile(ctx context.Context, userID string) (*profile.UserLearningProfile, error) {
	window, degraded := e.eventWindow(ctx, userID)
	if degraded {
		return nil, fmt.Errorf("cannot recompute profile for %q: event storage unavailable", userID)
	}

	snapshot := e.analyzer.Analyze(userID, window)
	p := profile.Recompute(userID, snapshot, window, e.now())
	if err := e.profiles.Save(ctx, &p); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	e.cache.Delete(userID, kindSnapshot)
	e.cache.Delete(userID, kindRecommendation)
	return &p, nil
}

// GetProfile returns the stored profile, or population defaults flagged
// implicitly by their RecomputedAt zero history when none is stored yet.
func (e *Engine) GetProfile(ctx context.Context, userID string) (profile.UserLearningProfile, error) {
	stored, err := e.profiles.FindByUser(ctx, userID)
	if err != nil {
		slog.Warn("profile fetch failed, using population defaults", "user_id", userID, "error", err)
		return profile.DefaultProfile(userID, e.now()), nil
	}
	if stored == nil {
		return profile.DefaultProfile(userID, e.now()), nil
	}
	return *stored, nil
}

// eventWindow loads the user's recent events. A storage failure yields an
// empty window and the degraded flag, never an error.
func (e *Engine) eventWindow(ctx context.Context, userID string) ([]event.LearningEvent, bool) {
	window, err := e.events.FindRecentByUser(ctx, userID, e.windowSize)
	if err != nil {
		slog.Warn("event fetch failed, degrading to empty window", "user_id", userID, "error", err)
		return nil, true
	}
	return window, false
}

// curveParameters returns the user's fitted forgetting curve, falling back
// to population defaults when no profile or history is available.
func (e *Engine) curveParameters(ctx context.Context, userID string) forgetting.Parameters {
	stored, err := e.profiles.FindByUser(ctx, userID)
	if err != nil {
		slog.Warn("profile fetch failed, using default curve", "user_id", userID, "error", err)
		return forgetting.DefaultParameters()
	}
	if stored == nil {
		window, degraded := e.eventWindow(ctx, userID)
		if degraded {
			return forgetting.DefaultParameters()
		}
		return forgetting.Fit(forgetting.OutcomesFromEvents(window))
	}

	return forgetting.NewParameters(stored.DecayRate, stored.ConsolidationFactor)
}

// categoryOf finds the category a tracked content item belongs to.
func (e *Engine) categoryOf(ctx context.Context, userID, contentID string) (string, error) {
	entry, err := e.schedules.FindByUserAndContent(ctx, userID, contentID)
	if err != nil || entry == nil {
		return "", err
	}
	return entry.CategoryID, nil
}
