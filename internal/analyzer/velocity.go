package analyzer

import (
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

const velocityChunks = 5

// calculateVelocity splits the chronological window into roughly equal
// chunks and scores the accuracy trend between consecutive chunks.
func calculateVelocity(events []event.LearningEvent) VelocityStats {
	chunkCount := velocityChunks
	if len(events) < chunkCount {
		chunkCount = len(events)
	}
	if chunkCount < 2 {
		return VelocityStats{
			Score:           0.5,
			ChunkAccuracies: []float64{},
		}
	}

	accuracies := make([]float64, 0, chunkCount)
	chunkSize := len(events) / chunkCount
	remainder := len(events) % chunkCount
	start := 0
	for i := 0; i < chunkCount; i++ {
		size := chunkSize
		if i < remainder {
			size++
		}
		accuracies = append(accuracies, accuracyOf(events[start:start+size]))
		start += size
	}

	var deltaSum float64
	for i := 1; i < len(accuracies); i++ {
		deltaSum += accuracies[i] - accuracies[i-1]
	}
	meanDelta := deltaSum / float64(len(accuracies)-1)

	score := 0.5 + 2*meanDelta
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return VelocityStats{
		Score:           score,
		Improving:       accuracies[len(accuracies)-1] > accuracies[0],
		ChunkAccuracies: accuracies,
	}
}
