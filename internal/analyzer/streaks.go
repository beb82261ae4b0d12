package analyzer

import (
	"sort"
	"time"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

// calculateStreaks computes consecutive-day study streaks from distinct
// active days. The current streak counts backward from today; a run that
// last saw activity yesterday is still alive, anything older is broken.
func calculateStreaks(events []event.LearningEvent, now time.Time) StreakStats {
	daySet := make(map[string]time.Time)
	for _, e := range events {
		key := dayKey(e.Timestamp)
		if _, ok := daySet[key]; !ok {
			t := e.Timestamp
			daySet[key] = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		}
	}
	if len(daySet) == 0 {
		return StreakStats{}
	}

	days := make([]time.Time, 0, len(daySet))
	for _, d := range daySet {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	// Collect maximal runs of consecutive days. Days are compared as
	// calendar dates, not 24h offsets, so DST transitions do not split runs.
	var runs []int
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].AddDate(0, 0, 1).Equal(days[i]) {
			run++
			continue
		}
		runs = append(runs, run)
		run = 1
	}
	runs = append(runs, run)

	longest := 0
	total := 0
	for _, r := range runs {
		total += r
		if r > longest {
			longest = r
		}
	}

	// Current streak: the final run, if it ends today or yesterday.
	current := 0
	lastDay := days[len(days)-1]
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, lastDay.Location())
	if lastDay.Equal(today) || lastDay.AddDate(0, 0, 1).Equal(today) {
		current = runs[len(runs)-1]
	}

	return StreakStats{
		LongestDays: longest,
		CurrentDays: current,
		AverageDays: float64(total) / float64(len(runs)),
	}
}
