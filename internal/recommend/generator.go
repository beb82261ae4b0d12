// Package recommend turns pattern snapshots into study recommendations.
// Generation is a pure combinator over the snapshot: the same snapshot
// always produces the same recommendation.
package recommend

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/analyzer"
)

//go:embed hints.yml
var embeddedHintPools []byte

const (
	// defaultHour is recommended when no hour bucket is reliable yet.
	defaultHour = 9

	baseSessionMinutes  = 25
	longSessionMinutes  = 40
	shortSessionMinutes = 15

	minDailyTarget          = 5
	maxDailyTarget          = 50
	inconsistentDailyTarget = 10

	highVelocity    = 0.6
	lowVelocity     = 0.4
	highConsistency = 0.7
	lowConsistency  = 0.4
)

// Hint is one piece of textual study advice.
type Hint struct {
	Category string
	Text     string
}

// Recommendation is the full set of study parameters for one user.
type Recommendation struct {
	BestHour             int
	SessionLengthMinutes int
	DailyQuestionTarget  int
	Hints                []Hint
}

type hintPools struct {
	Pools map[string][]string `yaml:"pools"`
}

// Generator selects hints from category-tagged template pools.
type Generator struct {
	pools hintPools
}

// NewGenerator loads the embedded hint pools.
func NewGenerator() (*Generator, error) {
	return newGenerator(embeddedHintPools)
}

// NewGeneratorFromFile loads hint pools from a file, falling back to the
// embedded pools when the file does not exist.
func NewGeneratorFromFile(path string) (*Generator, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewGenerator()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hint pools: %w", err)
	}
	return newGenerator(data)
}

func newGenerator(data []byte) (*Generator, error) {
	var pools hintPools
	if err := yaml.Unmarshal(data, &pools); err != nil {
		return nil, fmt.Errorf("failed to parse hint pools: %w", err)
	}
	return &Generator{pools: pools}, nil
}

// Generate builds the recommendation for one snapshot.
func (g *Generator) Generate(snapshot analyzer.PatternSnapshot) Recommendation {
	return Recommendation{
		BestHour:             OptimalHour(snapshot),
		SessionLengthMinutes: SessionLength(snapshot),
		DailyQuestionTarget:  DailyQuestionTarget(snapshot),
		Hints:                g.Hints(snapshot),
	}
}

// OptimalHour returns the user's highest-accuracy reliable hour, or the
// fixed default when no bucket is reliable yet.
func OptimalHour(snapshot analyzer.PatternSnapshot) int {
	if len(snapshot.TimeOfDay.BestPerformanceHours) > 0 {
		return snapshot.TimeOfDay.BestPerformanceHours[0]
	}
	return defaultHour
}

// SessionLength is a small decision table over velocity and consistency,
// kept discrete so recommendations stay stable and explainable.
func SessionLength(snapshot analyzer.PatternSnapshot) int {
	velocity := snapshot.Velocity.Score
	consistency := snapshot.Frequency.ConsistencyScore

	switch {
	case velocity >= highVelocity && consistency >= highConsistency:
		return longSessionMinutes
	case velocity < lowVelocity || consistency < lowConsistency:
		return shortSessionMinutes
	default:
		return baseSessionMinutes
	}
}

// DailyQuestionTarget is ceil(current average x 1.2), capped low for
// inconsistent learners to avoid overload.
func DailyQuestionTarget(snapshot analyzer.PatternSnapshot) int {
	target := int(math.Ceil(snapshot.Frequency.AverageDailyQuestions * 1.2))
	if target < minDailyTarget {
		target = minDailyTarget
	}

	limit := maxDailyTarget
	if snapshot.Frequency.ConsistencyScore < 0.5 {
		limit = inconsistentDailyTarget
	}
	if target > limit {
		target = limit
	}
	return target
}

// Hints selects advice from the template pools keyed by detected weakness,
// strength, trend, consistency and streak. Selection within a pool is
// deterministic for the same snapshot.
func (g *Generator) Hints(snapshot analyzer.PatternSnapshot) []Hint {
	hints := make([]Hint, 0, 6)

	for i, weakness := range snapshot.Subjects.Weaknesses {
		if i >= 2 {
			break
		}
		if text, ok := g.pick("weakness", snapshot.UserID+weakness.CategoryID); ok {
			hints = append(hints, Hint{Category: weakness.CategoryID, Text: fmt.Sprintf(text, weakness.CategoryID)})
		}
	}

	if len(snapshot.Subjects.Strengths) > 0 {
		strongest := snapshot.Subjects.Strengths[0]
		if text, ok := g.pick("strength", snapshot.UserID+strongest.CategoryID); ok {
			hints = append(hints, Hint{Category: strongest.CategoryID, Text: fmt.Sprintf(text, strongest.CategoryID)})
		}
	}

	if snapshot.Frequency.TotalEvents > 0 {
		switch {
		case snapshot.Velocity.Score >= highVelocity:
			if text, ok := g.pick("velocity_improving", snapshot.UserID); ok {
				hints = append(hints, Hint{Category: "trend", Text: text})
			}
		case snapshot.Velocity.Score < lowVelocity:
			if text, ok := g.pick("velocity_declining", snapshot.UserID); ok {
				hints = append(hints, Hint{Category: "trend", Text: text})
			}
		}
	}

	if snapshot.Frequency.TotalEvents > 0 && snapshot.Frequency.ConsistencyScore < lowConsistency {
		if text, ok := g.pick("consistency_low", snapshot.UserID); ok {
			hints = append(hints, Hint{Category: "consistency", Text: text})
		}
	}

	if snapshot.Streaks.CurrentDays >= 3 {
		if text, ok := g.pick("streak_active", snapshot.UserID); ok {
			hints = append(hints, Hint{Category: "streak", Text: fmt.Sprintf(text, snapshot.Streaks.CurrentDays)})
		}
	}

	return hints
}

// pick chooses one template from a pool by a stable key hash.
func (g *Generator) pick(pool, key string) (string, bool) {
	templates := g.pools.Pools[pool]
	if len(templates) == 0 {
		return "", false
	}

	sum := 0
	for _, r := range key {
		sum += int(r)
	}
	return templates[sum%len(templates)], true
}
