package analyzer

import (
	"time"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

const retentionHorizon = 7 * 24 * time.Hour

// calculateRetention computes accuracy over the last seven days as a coarse
// proxy ahead of the full forgetting-curve model.
func calculateRetention(events []event.LearningEvent, now time.Time) RetentionStats {
	cutoff := now.Add(-retentionHorizon)

	recent := make([]event.LearningEvent, 0)
	for _, e := range events {
		if !e.Timestamp.Before(cutoff) {
			recent = append(recent, e)
		}
	}

	return RetentionStats{
		SevenDayAccuracy: accuracyOf(recent),
		SampleSize:       len(recent),
	}
}
