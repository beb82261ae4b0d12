package analyzer

import (
	"sort"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

const (
	strengthAccuracy = 0.80
	strengthMinSize  = 5
	weaknessAccuracy = 0.60
	weaknessMinSize  = 3
)

// calculateSubjects classifies categories into strengths and weaknesses.
// Categories meeting neither threshold are omitted entirely.
func calculateSubjects(events []event.LearningEvent) SubjectStats {
	byCategory := make(map[string][]event.LearningEvent)
	for _, e := range events {
		byCategory[e.CategoryID] = append(byCategory[e.CategoryID], e)
	}

	strengths := make([]SubjectPerformance, 0)
	weaknesses := make([]SubjectPerformance, 0)

	for categoryID, categoryEvents := range byCategory {
		var totalResponseMs int
		for _, e := range categoryEvents {
			totalResponseMs += e.ResponseTimeMs
		}

		perf := SubjectPerformance{
			CategoryID:        categoryID,
			Events:            len(categoryEvents),
			Accuracy:          accuracyOf(categoryEvents),
			AvgResponseTimeMs: float64(totalResponseMs) / float64(len(categoryEvents)),
		}

		switch {
		case perf.Accuracy >= strengthAccuracy && perf.Events >= strengthMinSize:
			strengths = append(strengths, perf)
		case perf.Accuracy < weaknessAccuracy && perf.Events >= weaknessMinSize:
			weaknesses = append(weaknesses, perf)
		}
	}

	sort.SliceStable(strengths, func(i, j int) bool {
		if strengths[i].Accuracy != strengths[j].Accuracy {
			return strengths[i].Accuracy > strengths[j].Accuracy
		}
		return strengths[i].CategoryID < strengths[j].CategoryID
	})
	sort.SliceStable(weaknesses, func(i, j int) bool {
		if weaknesses[i].Accuracy != weaknesses[j].Accuracy {
			return weaknesses[i].Accuracy < weaknesses[j].Accuracy
		}
		return weaknesses[i].CategoryID < weaknesses[j].CategoryID
	})

	return SubjectStats{
		Strengths:  strengths,
		Weaknesses: weaknesses,
	}
}
