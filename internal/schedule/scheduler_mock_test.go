package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/forgetting"
	mock_schedule "github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/mocks/schedule"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/schedule"
)

var fixedNow = time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func TestScheduler_AddItem(t *testing.T) {
	params := forgetting.DefaultParameters()

	t.Run("creates a scheduled entry with the first interval", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repository := mock_schedule.NewMockRepository(ctrl)
		repository.EXPECT().
			FindByUserAndContent(gomock.Any(), "user-1", "content-1").
			Return(nil, nil)
		repository.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(int64(42), nil)

		scheduler := schedule.NewSchedulerWithClock(repository, fixedClock)
		entry, err := scheduler.AddItem(context.Background(), "user-1", "content-1", "finance", event.DifficultyMedium, params)

		require.NoError(t, err)
		assert.Equal(t, int64(42), entry.ID)
		assert.Equal(t, schedule.StatusScheduled, entry.Status)
		assert.Equal(t, 1, entry.IntervalDays)
		assert.Equal(t, fixedNow.AddDate(0, 0, 1), entry.NextReviewDate)
		assert.Equal(t, 0.0, entry.MasteryLevel)
	})

	t.Run("adding a tracked item returns the existing entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repository := mock_schedule.NewMockRepository(ctrl)
		existing := &schedule.ReviewScheduleEntry{ID: 7, UserID: "user-1", ContentID: "content-1", Status: schedule.StatusScheduled}
		repository.EXPECT().
			FindByUserAndContent(gomock.Any(), "user-1", "content-1").
			Return(existing, nil)

		scheduler := schedule.NewSchedulerWithClock(repository, fixedClock)
		entry, err := scheduler.AddItem(context.Background(), "user-1", "content-1", "finance", event.DifficultyMedium, params)

		require.NoError(t, err)
		assert.Same(t, existing, entry)
	})
}

func TestScheduler_RecordOutcome(t *testing.T) {
	params := forgetting.DefaultParameters()

	t.Run("applies the outcome and persists the entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repository := mock_schedule.NewMockRepository(ctrl)
		repository.EXPECT().
			FindByUserAndContent(gomock.Any(), "user-1", "content-1").
			Return(&schedule.ReviewScheduleEntry{ID: 7, UserID: "user-1", ContentID: "content-1", Status: schedule.StatusScheduled, IntervalDays: 1}, nil)
		repository.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry *schedule.ReviewScheduleEntry) error {
				assert.Equal(t, 1, entry.ReviewCount)
				assert.Equal(t, fixedNow, entry.LastReviewDate)
				return nil
			})

		scheduler := schedule.NewSchedulerWithClock(repository, fixedClock)
		entry, err := scheduler.RecordOutcome(context.Background(), "user-1", "content-1", 0.8, 4000, params)

		require.NoError(t, err)
		assert.Equal(t, 3, entry.IntervalDays)
	})

	t.Run("unknown content is an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repository := mock_schedule.NewMockRepository(ctrl)
		repository.EXPECT().
			FindByUserAndContent(gomock.Any(), "user-1", "missing").
			Return(nil, nil)

		scheduler := schedule.NewSchedulerWithClock(repository, fixedClock)
		_, err := scheduler.RecordOutcome(context.Background(), "user-1", "missing", 0.8, 4000, params)

		assert.ErrorContains(t, err, "no schedule entry")
	})

	t.Run("repository failures are wrapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repository := mock_schedule.NewMockRepository(ctrl)
		repository.EXPECT().
			FindByUserAndContent(gomock.Any(), "user-1", "content-1").
			Return(nil, errors.New("connection reset"))

		scheduler := schedule.NewSchedulerWithClock(repository, fixedClock)
		_, err := scheduler.RecordOutcome(context.Background(), "user-1", "content-1", 0.8, 4000, params)

		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestScheduler_GetDueReviews(t *testing.T) {
	params := forgetting.DefaultParameters()

	t.Run("weakest and most overdue entries come first", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repository := mock_schedule.NewMockRepository(ctrl)
		repository.EXPECT().
			FindDueByUser(gomock.Any(), "user-1", fixedNow).
			Return([]schedule.ReviewScheduleEntry{
				{ContentID: "fresh-strong", NextReviewDate: fixedNow, MasteryLevel: 0.9},
				{ContentID: "overdue-weak", NextReviewDate: fixedNow.AddDate(0, 0, -3), MasteryLevel: 0.2},
				{ContentID: "overdue-strong", NextReviewDate: fixedNow.AddDate(0, 0, -3), MasteryLevel: 0.8},
			}, nil)
		repository.EXPECT().
			FindMasteredByUser(gomock.Any(), "user-1").
			Return(nil, nil)

		scheduler := schedule.NewSchedulerWithClock(repository, fixedClock)
		due, err := scheduler.GetDueReviews(context.Background(), "user-1", 10, params)

		require.NoError(t, err)
		require.Len(t, due, 3)
		assert.Equal(t, "overdue-weak", due[0].ContentID)
		assert.Equal(t, "overdue-strong", due[1].ContentID)
		assert.Equal(t, "fresh-strong", due[2].ContentID)
		assert.Greater(t, due[0].PriorityScore, due[1].PriorityScore)
	})

	t.Run("ties break on the earlier due date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repository := mock_schedule.NewMockRepository(ctrl)
		repository.EXPECT().
			FindDueByUser(gomock.Any(), "user-1", fixedNow).
			Return([]schedule.ReviewScheduleEntry{
				// Both score exactly 5.0: zero overdue at mastery 0.5 versus
				// 2.5 days overdue at mastery 0.75.
				{ContentID: "later", NextReviewDate: fixedNow, MasteryLevel: 0.5},
				{ContentID: "earlier", NextReviewDate: fixedNow.Add(-60 * time.Hour), MasteryLevel: 0.75},
			}, nil)
		repository.EXPECT().
			FindMasteredByUser(gomock.Any(), "user-1").
			Return(nil, nil)

		scheduler := schedule.NewSchedulerWithClock(repository, fixedClock)
		due, err := scheduler.GetDueReviews(context.Background(), "user-1", 10, params)

		require.NoError(t, err)
		require.Len(t, due, 2)
		assert.Equal(t, due[0].PriorityScore, due[1].PriorityScore)
		assert.Equal(t, "earlier", due[0].ContentID)
	})

	t.Run("limit truncates after ordering", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repository := mock_schedule.NewMockRepository(ctrl)
		repository.EXPECT().
			FindDueByUser(gomock.Any(), "user-1", fixedNow).
			Return([]schedule.ReviewScheduleEntry{
				{ContentID: "a", NextReviewDate: fixedNow, MasteryLevel: 0.9},
				{ContentID: "b", NextReviewDate: fixedNow.AddDate(0, 0, -5), MasteryLevel: 0.1},
			}, nil)
		repository.EXPECT().
			FindMasteredByUser(gomock.Any(), "user-1").
			Return(nil, nil)

		scheduler := schedule.NewSchedulerWithClock(repository, fixedClock)
		due, err := scheduler.GetDueReviews(context.Background(), "user-1", 1, params)

		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "b", due[0].ContentID)
	})

	t.Run("mastered entries stay excluded while retention holds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repository := mock_schedule.NewMockRepository(ctrl)
		repository.EXPECT().
			FindDueByUser(gomock.Any(), "user-1", fixedNow).
			Return(nil, nil)
		repository.EXPECT().
			FindMasteredByUser(gomock.Any(), "user-1").
			Return([]schedule.ReviewScheduleEntry{
				{ContentID: "mastered-fresh", Status: schedule.StatusMastered, LastReviewDate: fixedNow.AddDate(0, 0, -1), NextReviewDate: fixedNow.AddDate(0, 0, -1), MasteryLevel: 0.95},
			}, nil)

		scheduler := schedule.NewSchedulerWithClock(repository, fixedClock)
		due, err := scheduler.GetDueReviews(context.Background(), "user-1", 10, params)

		require.NoError(t, err)
		assert.Empty(t, due)
	})

	t.Run("a mastered entry at forgetting risk re-enters the queue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repository := mock_schedule.NewMockRepository(ctrl)
		repository.EXPECT().
			FindDueByUser(gomock.Any(), "user-1", fixedNow).
			Return(nil, nil)
		repository.EXPECT().
			FindMasteredByUser(gomock.Any(), "user-1").
			Return([]schedule.ReviewScheduleEntry{
				// Default decay predicts retention well under 0.5 after 30 days.
				{ContentID: "mastered-stale", Status: schedule.StatusMastered, LastReviewDate: fixedNow.AddDate(0, 0, -30), NextReviewDate: fixedNow.AddDate(0, 0, -30), MasteryLevel: 0.95},
			}, nil)

		scheduler := schedule.NewSchedulerWithClock(repository, fixedClock)
		due, err := scheduler.GetDueReviews(context.Background(), "user-1", 10, params)

		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "mastered-stale", due[0].ContentID)
	})
}
