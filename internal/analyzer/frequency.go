package analyzer

import (
	"math"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

// calculateFrequency groups events by calendar day and derives volume and
// consistency measures.
func calculateFrequency(events []event.LearningEvent) FrequencyStats {
	dailyCounts := make(map[string]int)
	for _, e := range events {
		dailyCounts[dayKey(e.Timestamp)]++
	}

	activeDays := len(dailyCounts)
	if activeDays == 0 {
		return FrequencyStats{}
	}

	counts := make([]float64, 0, activeDays)
	for _, c := range dailyCounts {
		counts = append(counts, float64(c))
	}

	mean := float64(len(events)) / float64(activeDays)

	var variance float64
	for _, c := range counts {
		variance += (c - mean) * (c - mean)
	}
	variance /= float64(activeDays)
	stdDev := math.Sqrt(variance)

	consistency := 0.0
	if mean > 0 {
		consistency = math.Max(0, 1-stdDev/mean)
	}

	return FrequencyStats{
		TotalEvents:           len(events),
		ActiveDays:            activeDays,
		AverageDailyQuestions: mean,
		ConsistencyScore:      consistency,
	}
}
