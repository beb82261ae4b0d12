package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/cache"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/config"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
	mock_event "github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/mocks/event"
	mock_profile "github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/mocks/profile"
	mock_schedule "github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/mocks/schedule"
	mock_taxonomy "github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/mocks/taxonomy"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/profile"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/recommend"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/schedule"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/taxonomy"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/testutil"
)

var fixedNow = time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

type engineFixture struct {
	events    *mock_event.MockRepository
	schedules *mock_schedule.MockRepository
	profiles  *mock_profile.MockRepository
	resolver  *mock_taxonomy.MockResolver
	engine    *Engine
}

func newFixture(t *testing.T) *engineFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	generator, err := recommend.NewGenerator()
	require.NoError(t, err)

	f := &engineFixture{
		events:    mock_event.NewMockRepository(ctrl),
		schedules: mock_schedule.NewMockRepository(ctrl),
		profiles:  mock_profile.NewMockRepository(ctrl),
		resolver:  mock_taxonomy.NewMockResolver(ctrl),
	}
	f.engine = NewWithClock(
		f.events, f.schedules, f.profiles, f.resolver,
		cache.NewMemoryCacheWithClock(func() time.Time { return fixedNow }),
		generator,
		config.AnalyticsConfig{
			EventWindowSize:          500,
			SnapshotTTLMinutes:       5,
			RecommendationTTLMinutes: 10,
		},
		func() time.Time { return fixedNow },
	)
	return f
}

func eventWindowFixture() []event.LearningEvent {
	var events []event.LearningEvent
	start := time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC)
	for day := 0; day < 4; day++ {
		for i := 0; i < 4; i++ {
			at := start.AddDate(0, 0, day).Add(time.Duration(i*10) * time.Minute)
			events = append(events, testutil.QuizEvent("user-1", "finance", event.DifficultyMedium, i != 0, at))
		}
	}
	return events
}

func TestEngine_IngestQuizAnswers(t *testing.T) {
	answered := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)

	t.Run("stores resolved records", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.EXPECT().Resolve(gomock.Any(), "math").Return("cat-math", nil).Times(2)
		f.events.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e *event.LearningEvent) error {
				assert.Equal(t, "cat-math", e.CategoryID)
				assert.Equal(t, event.SessionTypeQuiz, e.SessionType)
				return nil
			}).
			Times(2)

		result, err := f.engine.IngestQuizAnswers(context.Background(), []event.RawQuizAnswer{
			{UserID: "user-1", QuestionID: "q-1", Category: "math", Difficulty: "easy", IsCorrect: true, ResponseTimeMs: 4000, AnsweredAt: answered},
			{UserID: "user-1", QuestionID: "q-2", Category: "math", Difficulty: "hard", ResponseTimeMs: 9000, AnsweredAt: answered},
		})

		assert.NoError(t, err)
		assert.Equal(t, IngestResult{Stored: 2}, result)
	})

	t.Run("drops unresolved categories without failing", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.EXPECT().Resolve(gomock.Any(), "math").Return("cat-math", nil)
		f.resolver.EXPECT().Resolve(gomock.Any(), "underwater basket weaving").Return("", taxonomy.ErrUnresolved)
		f.events.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		result, err := f.engine.IngestQuizAnswers(context.Background(), []event.RawQuizAnswer{
			{UserID: "user-1", QuestionID: "q-1", Category: "math", Difficulty: "easy", IsCorrect: true, AnsweredAt: answered},
			{UserID: "user-1", QuestionID: "q-2", Category: "underwater basket weaving", Difficulty: "easy", AnsweredAt: answered},
		})

		assert.NoError(t, err)
		assert.Equal(t, IngestResult{Stored: 1, Dropped: 1}, result)
	})

	t.Run("contract violation fails the batch", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.engine.IngestQuizAnswers(context.Background(), []event.RawQuizAnswer{
			{UserID: "user-1", QuestionID: "q-1", Category: "math", Difficulty: "easy", ResponseTimeMs: -1, AnsweredAt: answered},
		})

		assert.ErrorIs(t, err, event.ErrInvalidRecord)
	})

	t.Run("storage failure stops the batch and reports progress", func(t *testing.T) {
		f := newFixture(t)
		f.resolver.EXPECT().Resolve(gomock.Any(), "math").Return("cat-math", nil)
		f.events.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

		result, err := f.engine.IngestQuizAnswers(context.Background(), []event.RawQuizAnswer{
			{UserID: "user-1", QuestionID: "q-1", Category: "math", Difficulty: "easy", AnsweredAt: answered},
			{UserID: "user-1", QuestionID: "q-2", Category: "math", Difficulty: "easy", AnsweredAt: answered},
		})

		assert.Error(t, err)
		assert.Equal(t, IngestResult{}, result)
	})
}

func TestEngine_IngestCourseSessions(t *testing.T) {
	f := newFixture(t)
	completed := time.Date(2026, 8, 20, 19, 30, 0, 0, time.UTC)

	f.resolver.EXPECT().Resolve(gomock.Any(), "statistics").Return("cat-stats", nil)
	f.events.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *event.LearningEvent) error {
			assert.Equal(t, "cat-stats", e.CategoryID)
			assert.Equal(t, event.SessionTypeCourse, e.SessionType)
			assert.True(t, e.IsCorrect)
			return nil
		})

	result, err := f.engine.IngestCourseSessions(context.Background(), []event.RawCourseSession{
		{UserID: "user-1", SessionID: "s-1", Theme: "statistics", Difficulty: "intermediate", DurationMs: 1_200_000, CompletedAt: completed},
	})

	assert.NoError(t, err)
	assert.Equal(t, IngestResult{Stored: 1}, result)
}

func TestEngine_GetPatternSnapshot(t *testing.T) {
	t.Run("computes and caches on miss", func(t *testing.T) {
		f := newFixture(t)
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-1", 500).
			Return(eventWindowFixture(), nil).
			Times(1)

		first := f.engine.GetPatternSnapshot(context.Background(), "user-1")
		second := f.engine.GetPatternSnapshot(context.Background(), "user-1")

		assert.False(t, first.Degraded)
		assert.Equal(t, 16, first.Snapshot.Frequency.TotalEvents)
		assert.Equal(t, first, second)
	})

	t.Run("storage failure degrades to the empty snapshot", func(t *testing.T) {
		f := newFixture(t)
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-1", 500).
			Return(nil, errors.New("connection refused")).
			Times(2)

		result := f.engine.GetPatternSnapshot(context.Background(), "user-1")

		assert.True(t, result.Degraded)
		assert.Equal(t, 0, result.Snapshot.Frequency.ActiveDays)

		// Degraded results are not cached; recovery is possible next call.
		again := f.engine.GetPatternSnapshot(context.Background(), "user-1")
		assert.True(t, again.Degraded)
	})
}

func TestEngine_GetOptimalLearningTime(t *testing.T) {
	t.Run("derives the recommendation from the snapshot", func(t *testing.T) {
		f := newFixture(t)
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-1", 500).
			Return(eventWindowFixture(), nil).
			Times(1)

		result := f.engine.GetOptimalLearningTime(context.Background(), "user-1")

		assert.False(t, result.Degraded)
		assert.Equal(t, 9, result.Recommendation.BestHour)
		assert.Greater(t, result.Recommendation.DailyQuestionTarget, 0)
		assert.Greater(t, result.Recommendation.SessionLengthMinutes, 0)
	})

	t.Run("cached per its own ttl", func(t *testing.T) {
		f := newFixture(t)
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-1", 500).
			Return(eventWindowFixture(), nil).
			Times(1)

		first := f.engine.GetOptimalLearningTime(context.Background(), "user-1")
		second := f.engine.GetOptimalLearningTime(context.Background(), "user-1")
		assert.Equal(t, first, second)
	})

	t.Run("degraded snapshot carries through", func(t *testing.T) {
		f := newFixture(t)
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-1", 500).
			Return(nil, errors.New("timeout"))

		result := f.engine.GetOptimalLearningTime(context.Background(), "user-1")

		assert.True(t, result.Degraded)
		// Population defaults still produce a complete result.
		assert.Equal(t, 9, result.Recommendation.BestHour)
	})
}

func TestEngine_GetPersonalizedHints(t *testing.T) {
	t.Run("without content the snapshot hints come back as is", func(t *testing.T) {
		f := newFixture(t)
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-1", 500).
			Return(eventWindowFixture(), nil)

		hints := f.engine.GetPersonalizedHints(context.Background(), "user-1", "")
		assert.NotNil(t, hints)
	})

	t.Run("content hints sort its category first", func(t *testing.T) {
		f := newFixture(t)
		// Mixed strong and weak categories so both hint kinds appear.
		var events []event.LearningEvent
		start := time.Date(2026, 8, 17, 9, 0, 0, 0, time.UTC)
		for i := 0; i < 6; i++ {
			at := start.AddDate(0, 0, i%3).Add(time.Duration(i) * time.Minute)
			events = append(events, testutil.QuizEvent("user-1", "finance", event.DifficultyMedium, true, at))
			events = append(events, testutil.QuizEvent("user-1", "tech", event.DifficultyMedium, i == 0, at.Add(time.Minute)))
		}
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-1", 500).
			Return(events, nil)
		f.schedules.EXPECT().
			FindByUserAndContent(gomock.Any(), "user-1", "content-9").
			Return(&schedule.ReviewScheduleEntry{ContentID: "content-9", CategoryID: "finance"}, nil)

		// Weakness hints normally sort ahead of strength hints; asking about
		// finance content moves the finance strength hint to the front.
		hints := f.engine.GetPersonalizedHints(context.Background(), "user-1", "content-9")

		require.NotEmpty(t, hints)
		assert.Equal(t, "finance", hints[0].Category)
	})
}

func TestEngine_GetDueReviews(t *testing.T) {
	f := newFixture(t)
	f.profiles.EXPECT().
		FindByUser(gomock.Any(), "user-1").
		Return(&profile.UserLearningProfile{UserID: "user-1", DecayRate: 0.5, ConsolidationFactor: 1.0}, nil)
	f.schedules.EXPECT().
		FindDueByUser(gomock.Any(), "user-1", fixedNow).
		Return([]schedule.ReviewScheduleEntry{
			{ContentID: "content-1", NextReviewDate: fixedNow.AddDate(0, 0, -1), MasteryLevel: 0.3},
		}, nil)
	f.schedules.EXPECT().
		FindMasteredByUser(gomock.Any(), "user-1").
		Return(nil, nil)

	due, err := f.engine.GetDueReviews(context.Background(), "user-1", 10)

	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "content-1", due[0].ContentID)
}

func TestEngine_RecordReviewOutcome(t *testing.T) {
	t.Run("profile fetch failure still records with the default curve", func(t *testing.T) {
		f := newFixture(t)
		f.profiles.EXPECT().
			FindByUser(gomock.Any(), "user-1").
			Return(nil, errors.New("timeout"))
		f.schedules.EXPECT().
			FindByUserAndContent(gomock.Any(), "user-1", "content-1").
			Return(&schedule.ReviewScheduleEntry{ID: 7, UserID: "user-1", ContentID: "content-1", Status: schedule.StatusScheduled, IntervalDays: 1}, nil)
		f.schedules.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			Return(nil)

		entry, err := f.engine.RecordReviewOutcome(context.Background(), "user-1", "content-1", 0.8, 4000)

		require.NoError(t, err)
		assert.Equal(t, 1, entry.ReviewCount)
	})

	t.Run("scheduler errors propagate", func(t *testing.T) {
		f := newFixture(t)
		f.profiles.EXPECT().
			FindByUser(gomock.Any(), "user-1").
			Return(nil, nil)
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-1", 500).
			Return(nil, nil)
		f.schedules.EXPECT().
			FindByUserAndContent(gomock.Any(), "user-1", "missing").
			Return(nil, nil)

		_, err := f.engine.RecordReviewOutcome(context.Background(), "user-1", "missing", 0.8, 4000)
		assert.ErrorContains(t, err, "failed to record review outcome")
	})
}

func TestEngine_GetLiveFlowGuidance(t *testing.T) {
	f := newFixture(t)

	first := f.engine.GetLiveFlowGuidance("session-1", 0.95, 20, []int{2000, 2100})
	second := f.engine.GetLiveFlowGuidance("session-1", 0.95, 20, []int{2000, 2100})

	assert.Equal(t, first, second)
	assert.True(t, first.Continue)
}

func TestEngine_RecomputeProfile(t *testing.T) {
	t.Run("saves the recomputed profile and invalidates only that user's analyses", func(t *testing.T) {
		f := newFixture(t)
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-1", 500).
			Return(eventWindowFixture(), nil).
			Times(3)
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-2", 500).
			Return(eventWindowFixture(), nil).
			Times(1)
		f.profiles.EXPECT().
			Save(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *profile.UserLearningProfile) error {
				assert.Equal(t, "user-1", p.UserID)
				assert.Equal(t, fixedNow, p.RecomputedAt)
				return nil
			})

		// Warm both snapshot caches, recompute user-1, then read both again.
		// The third user-1 fetch proves that cached snapshot was invalidated;
		// the single user-2 fetch proves the other user's was not.
		f.engine.GetPatternSnapshot(context.Background(), "user-1")
		f.engine.GetPatternSnapshot(context.Background(), "user-2")
		_, err := f.engine.RecomputeProfile(context.Background(), "user-1")
		require.NoError(t, err)
		f.engine.GetPatternSnapshot(context.Background(), "user-1")
		f.engine.GetPatternSnapshot(context.Background(), "user-2")
	})

	t.Run("event storage failure is an error, not a silent default", func(t *testing.T) {
		f := newFixture(t)
		f.events.EXPECT().
			FindRecentByUser(gomock.Any(), "user-1", 500).
			Return(nil, errors.New("connection refused"))

		_, err := f.engine.RecomputeProfile(context.Background(), "user-1")
		assert.ErrorContains(t, err, "event storage unavailable")
	})
}

func TestEngine_GetProfile(t *testing.T) {
	t.Run("returns the stored profile", func(t *testing.T) {
		f := newFixture(t)
		stored := &profile.UserLearningProfile{UserID: "user-1", PeakHour: 20}
		f.profiles.EXPECT().
			FindByUser(gomock.Any(), "user-1").
			Return(stored, nil)

		p, err := f.engine.GetProfile(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, 20, p.PeakHour)
	})

	t.Run("first use returns population defaults", func(t *testing.T) {
		f := newFixture(t)
		f.profiles.EXPECT().
			FindByUser(gomock.Any(), "user-1").
			Return(nil, nil)

		p, err := f.engine.GetProfile(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, profile.DefaultProfile("user-1", fixedNow), p)
	})

	t.Run("storage failure degrades to population defaults", func(t *testing.T) {
		f := newFixture(t)
		f.profiles.EXPECT().
			FindByUser(gomock.Any(), "user-1").
			Return(nil, errors.New("timeout"))

		p, err := f.engine.GetProfile(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, profile.DefaultProfile("user-1", fixedNow), p)
	})
}
