package analyzer

import (
	"sort"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

// reliableBucketSize is the minimum event count for an hour bucket to be
// considered when ranking best performance hours.
const reliableBucketSize = 3

// calculateTimeOfDay buckets events by hour of day and ranks performance.
func calculateTimeOfDay(events []event.LearningEvent) TimeOfDayStats {
	byHour := make(map[int][]event.LearningEvent)
	for _, e := range events {
		hour := e.Timestamp.Hour()
		byHour[hour] = append(byHour[hour], e)
	}

	buckets := make([]HourPerformance, 0, len(byHour))
	for hour, hourEvents := range byHour {
		buckets = append(buckets, HourPerformance{
			Hour:     hour,
			Events:   len(hourEvents),
			Accuracy: accuracyOf(hourEvents),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Hour < buckets[j].Hour
	})

	// Best performance hours: reliable buckets only, ranked by accuracy.
	reliable := make([]HourPerformance, 0, len(buckets))
	for _, b := range buckets {
		if b.Events >= reliableBucketSize {
			reliable = append(reliable, b)
		}
	}
	sort.SliceStable(reliable, func(i, j int) bool {
		if reliable[i].Accuracy != reliable[j].Accuracy {
			return reliable[i].Accuracy > reliable[j].Accuracy
		}
		return reliable[i].Hour < reliable[j].Hour
	})

	bestHours := make([]int, 0, 3)
	for i := 0; i < len(reliable) && i < 3; i++ {
		bestHours = append(bestHours, reliable[i].Hour)
	}

	// Peak focus: the bucket maximizing volume x accuracy.
	peakHour := -1
	peakScore := -1.0
	for _, b := range buckets {
		score := float64(b.Events) * b.Accuracy
		if score > peakScore {
			peakScore = score
			peakHour = b.Hour
		}
	}

	return TimeOfDayStats{
		BestPerformanceHours: bestHours,
		PeakFocusHour:        peakHour,
		Buckets:              buckets,
	}
}
