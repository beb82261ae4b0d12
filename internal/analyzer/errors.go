package analyzer

import (
	"sort"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

// calculateErrors groups incorrect quiz answers by (category, difficulty)
// and reports the three most frequent combinations.
func calculateErrors(events []event.LearningEvent) ErrorStats {
	type comboKey struct {
		categoryID string
		difficulty event.Difficulty
	}

	counts := make(map[comboKey]int)
	quizTotal := 0
	quizIncorrect := 0
	for _, e := range events {
		if e.SessionType != event.SessionTypeQuiz {
			continue
		}
		quizTotal++
		if e.IsCorrect {
			continue
		}
		quizIncorrect++
		counts[comboKey{categoryID: e.CategoryID, difficulty: e.Difficulty}]++
	}

	combos := make([]ErrorCombo, 0, len(counts))
	for key, count := range counts {
		combos = append(combos, ErrorCombo{
			CategoryID: key.categoryID,
			Difficulty: key.difficulty,
			Count:      count,
		})
	}
	sort.SliceStable(combos, func(i, j int) bool {
		if combos[i].Count != combos[j].Count {
			return combos[i].Count > combos[j].Count
		}
		if combos[i].CategoryID != combos[j].CategoryID {
			return combos[i].CategoryID < combos[j].CategoryID
		}
		return combos[i].Difficulty.Rank() < combos[j].Difficulty.Rank()
	})
	if len(combos) > 3 {
		combos = combos[:3]
	}

	errorRate := 0.0
	if quizTotal > 0 {
		errorRate = float64(quizIncorrect) / float64(quizTotal)
	}

	return ErrorStats{
		OverallErrorRate: errorRate,
		TopCombos:        combos,
	}
}
