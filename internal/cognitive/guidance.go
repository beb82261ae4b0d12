package cognitive

// GuidanceStatus is a discrete in-session performance band.
type GuidanceStatus string

const (
	StatusExcellent  GuidanceStatus = "excellent"
	StatusGood       GuidanceStatus = "good"
	StatusFair       GuidanceStatus = "fair"
	StatusStruggling GuidanceStatus = "struggling"
	StatusPoor       GuidanceStatus = "poor"
)

// LiveGuidance is mid-session advice derived from current performance.
type LiveGuidance struct {
	SessionID         string
	Status            GuidanceStatus
	RecommendedAction string
	Continue          bool
}

const (
	// fatigueMinutes is the session length after which a sustained
	// slowdown downgrades the continue recommendation.
	fatigueMinutes = 45

	// fatigueSlowdown is the late-to-early response time ratio treated as
	// a sustained slowdown.
	fatigueSlowdown = 1.5
)

// ProvideLiveGuidance classifies current accuracy into fixed bands, each
// with a fixed action. Accuracy is a fraction in [0, 1]. It works on
// partial data and always returns the same guidance for the same inputs.
func ProvideLiveGuidance(sessionID string, currentAccuracy, elapsedMinutes float64, recentResponseTimesMs []int) LiveGuidance {
	guidance := LiveGuidance{SessionID: sessionID}

	switch {
	case currentAccuracy >= 0.9:
		guidance.Status = StatusExcellent
		guidance.RecommendedAction = "Increase the difficulty to keep the challenge meaningful."
		guidance.Continue = true
	case currentAccuracy >= 0.75:
		guidance.Status = StatusGood
		guidance.RecommendedAction = "Keep going at this level."
		guidance.Continue = true
	case currentAccuracy >= 0.6:
		guidance.Status = StatusFair
		guidance.RecommendedAction = "Slow down and review explanations before answering."
		guidance.Continue = true
	case currentAccuracy >= 0.4:
		guidance.Status = StatusStruggling
		guidance.RecommendedAction = "Drop to easier content and rebuild confidence."
		guidance.Continue = true
	default:
		guidance.Status = StatusPoor
		guidance.RecommendedAction = "Stop here and regroup; revisit the fundamentals first."
		guidance.Continue = false
	}

	// Long sessions with a sustained slowdown stop even in passing bands.
	if guidance.Continue && elapsedMinutes >= fatigueMinutes && isSlowingDown(recentResponseTimesMs) {
		guidance.Continue = false
		guidance.RecommendedAction = "Take a break; response times show fatigue setting in."
	}

	return guidance
}

// isSlowingDown compares the later half of recent response times against
// the earlier half.
func isSlowingDown(responseTimesMs []int) bool {
	if len(responseTimesMs) < 4 {
		return false
	}

	half := len(responseTimesMs) / 2
	var early, late float64
	for _, ms := range responseTimesMs[:half] {
		early += float64(ms)
	}
	for _, ms := range responseTimesMs[len(responseTimesMs)-half:] {
		late += float64(ms)
	}
	if early <= 0 {
		return false
	}
	return late/early >= fatigueSlowdown
}
