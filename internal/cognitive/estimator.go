// Package cognitive estimates mental effort and flow from session telemetry.
// Every function here is pure: identical inputs always produce identical
// outputs.
package cognitive

import (
	"math"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

const (
	// fastResponseMs is the response time under which accurate answers
	// count as effortless.
	fastResponseMs = 10000

	maxLoad = 10.0
)

// ScoreCognitiveLoad estimates mental effort on a 0 to 10 scale. Harder
// content, slow answers, long sessions and interruptions raise it; accurate
// answers given quickly lower it.
func ScoreCognitiveLoad(accuracyRate float64, avgResponseTimeMs int, difficulty event.Difficulty, questionCount, interruptionCount int) float64 {
	rank := difficulty.Rank()
	if rank == 0 {
		rank = 2
	}
	avgSlowness := clamp(float64(avgResponseTimeMs)/fastResponseMs, 0, 1)

	difficultyLoad := float64(rank) * 1.5
	timeLoad := avgSlowness * 2
	volumeLoad := clamp(float64(questionCount)/25, 0, 1.5)
	interruptionLoad := clamp(float64(interruptionCount)*0.5, 0, 2)

	// Fluency relief: high accuracy at speed means the load was handled.
	relief := clamp(accuracyRate, 0, 1) * (1 - avgSlowness) * 2

	return clamp(difficultyLoad+timeLoad+volumeLoad+interruptionLoad-relief, 0, maxLoad)
}

// FlowInput is one session's telemetry for flow estimation. Rates and
// indicator values are fractions in [0, 1].
type FlowInput struct {
	AccuracyRate            float64
	ContentDifficulty       event.Difficulty
	ResponseTimeConsistency float64
	SessionDurationMinutes  float64
	UserSkillLevel          float64
	InterruptionCount       int
	EngagementIndicators    float64
}

// ScoreFlowState estimates how close a session was to a flow state, in
// [0, 1]. The challenge term is symmetric around the user's skill: content
// far above it scores as poorly as content far below it.
func ScoreFlowState(in FlowInput) float64 {
	rank := in.ContentDifficulty.Rank()
	if rank == 0 {
		rank = 2
	}
	challenge := float64(rank) / 4
	skill := clamp(in.UserSkillLevel, 0, 1)

	// Full penalty once the challenge-skill gap reaches half the scale,
	// in either direction.
	gap := math.Abs(challenge-skill) / 0.5
	challengeFit := 1 - clamp(gap, 0, 1)

	durationFit := clamp(in.SessionDurationMinutes/15, 0, 1) *
		clamp((90-in.SessionDurationMinutes)/30, 0, 1)

	flow := 0.35*challengeFit +
		0.20*clamp(in.ResponseTimeConsistency, 0, 1) +
		0.15*clamp(in.AccuracyRate, 0, 1) +
		0.15*clamp(in.EngagementIndicators, 0, 1) +
		0.15*durationFit

	flow -= clamp(float64(in.InterruptionCount)*0.1, 0, 0.3)

	return clamp(flow, 0, 1)
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
