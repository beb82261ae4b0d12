package analyzer

import (
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

const (
	// progressionWindow restricts level assignment to recent behavior.
	progressionWindow = 50

	levelThreshold = 0.70
	readyThreshold = 0.75

	// A tier certifies a level only with a reliable sample; readiness for
	// the next level accepts a smaller one.
	minLevelSample = 5
	minReadySample = 3
)

// normalizeTier folds both difficulty scales onto the quiz scale so course
// and quiz events contribute to the same progression.
func normalizeTier(d event.Difficulty) event.Difficulty {
	switch d.Rank() {
	case 1:
		return event.DifficultyEasy
	case 2:
		return event.DifficultyMedium
	case 3, 4:
		return event.DifficultyHard
	}
	return ""
}

// nextTierFor maps the learner's current level to the difficulty tier whose
// accuracy certifies readiness for the next level. Advanced has no next tier.
func nextTierFor(level Level) (event.Difficulty, bool) {
	switch level {
	case LevelNovice:
		return event.DifficultyEasy, true
	case LevelBeginner:
		return event.DifficultyMedium, true
	case LevelIntermediate:
		return event.DifficultyHard, true
	}
	return "", false
}

// calculateDifficultyProgression assigns a level by cascading thresholds over
// per-difficulty accuracy, restricted to the most recent events.
func calculateDifficultyProgression(events []event.LearningEvent) DifficultyProgression {
	recent := events
	if len(recent) > progressionWindow {
		recent = recent[len(recent)-progressionWindow:]
	}

	byTier := make(map[event.Difficulty][]event.LearningEvent)
	for _, e := range recent {
		tier := normalizeTier(e.Difficulty)
		if tier == "" {
			continue
		}
		byTier[tier] = append(byTier[tier], e)
	}

	accuracy := make(map[event.Difficulty]float64, len(byTier))
	for tier, tierEvents := range byTier {
		accuracy[tier] = accuracyOf(tierEvents)
	}

	certifies := func(tier event.Difficulty) bool {
		return len(byTier[tier]) >= minLevelSample && accuracy[tier] >= levelThreshold
	}

	level := LevelNovice
	switch {
	case certifies(event.DifficultyHard):
		level = LevelAdvanced
	case certifies(event.DifficultyMedium):
		level = LevelIntermediate
	case certifies(event.DifficultyEasy):
		level = LevelBeginner
	}

	ready := false
	if nextTier, ok := nextTierFor(level); ok {
		ready = len(byTier[nextTier]) >= minReadySample && accuracy[nextTier] >= readyThreshold
	}

	return DifficultyProgression{
		CurrentLevel:         level,
		AccuracyByDifficulty: accuracy,
		ReadyForNextLevel:    ready,
	}
}
