// Package report renders a user's analytics as markdown and exports it
// as PDF.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/analyzer"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/profile"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/recommend"
	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/schedule"
)

// Data is everything one report covers.
type Data struct {
	Snapshot       analyzer.PatternSnapshot
	Recommendation recommend.Recommendation
	DueReviews     []schedule.ReviewScheduleEntry
	Profile        profile.UserLearningProfile
}

// RenderMarkdown builds the full markdown report.
func RenderMarkdown(data Data) string {
	var b strings.Builder
	snapshot := data.Snapshot

	fmt.Fprintf(&b, "# Learning Report: %s\n\n", snapshot.UserID)
	fmt.Fprintf(&b, "Generated at %s\n\n", snapshot.GeneratedAt.Format("2006-01-02 15:04"))

	b.WriteString("## Study Frequency\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Total events | %d |\n", snapshot.Frequency.TotalEvents)
	fmt.Fprintf(&b, "| Active days | %d |\n", snapshot.Frequency.ActiveDays)
	fmt.Fprintf(&b, "| Average daily questions | %.1f |\n", snapshot.Frequency.AverageDailyQuestions)
	fmt.Fprintf(&b, "| Consistency | %s |\n", percent(snapshot.Frequency.ConsistencyScore))
	b.WriteString("\n")

	b.WriteString("## Time of Day\n\n")
	if snapshot.TimeOfDay.PeakFocusHour >= 0 {
		fmt.Fprintf(&b, "Peak focus hour: %02d:00\n\n", snapshot.TimeOfDay.PeakFocusHour)
	} else {
		b.WriteString("Not enough data for hour-of-day analysis yet.\n\n")
	}
	if len(snapshot.TimeOfDay.BestPerformanceHours) > 0 {
		hours := make([]string, 0, len(snapshot.TimeOfDay.BestPerformanceHours))
		for _, hour := range snapshot.TimeOfDay.BestPerformanceHours {
			hours = append(hours, fmt.Sprintf("%02d:00", hour))
		}
		fmt.Fprintf(&b, "Best performance hours: %s\n\n", strings.Join(hours, ", "))
	}

	b.WriteString("## Subjects\n\n")
	writeSubjects(&b, "Strengths", snapshot.Subjects.Strengths)
	writeSubjects(&b, "Weaknesses", snapshot.Subjects.Weaknesses)

	b.WriteString("## Difficulty Progression\n\n")
	fmt.Fprintf(&b, "Current level: **%s**", snapshot.Difficulty.CurrentLevel)
	if snapshot.Difficulty.ReadyForNextLevel {
		b.WriteString(" (ready for the next level)")
	}
	b.WriteString("\n\n")

	b.WriteString("## Streaks\n\n")
	fmt.Fprintf(&b, "Current: %d days, longest: %d days, average: %.1f days\n\n",
		snapshot.Streaks.CurrentDays, snapshot.Streaks.LongestDays, snapshot.Streaks.AverageDays)

	b.WriteString("## Errors\n\n")
	fmt.Fprintf(&b, "Overall quiz error rate: %s\n\n", percent(snapshot.Errors.OverallErrorRate))
	if len(snapshot.Errors.TopCombos) > 0 {
		b.WriteString("| Category | Difficulty | Errors |\n|---|---|---|\n")
		for _, combo := range snapshot.Errors.TopCombos {
			fmt.Fprintf(&b, "| %s | %s | %d |\n", combo.CategoryID, combo.Difficulty, combo.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Trend and Retention\n\n")
	trend := "stable"
	if snapshot.Velocity.Improving {
		trend = "improving"
	} else if snapshot.Velocity.Score < 0.4 {
		trend = "declining"
	}
	fmt.Fprintf(&b, "Learning velocity: %.2f (%s)\n\n", snapshot.Velocity.Score, trend)
	fmt.Fprintf(&b, "Seven-day accuracy: %s over %d events\n\n",
		percent(snapshot.Retention.SevenDayAccuracy), snapshot.Retention.SampleSize)

	b.WriteString("## Recommendations\n\n")
	fmt.Fprintf(&b, "- Best study hour: %02d:00\n", data.Recommendation.BestHour)
	fmt.Fprintf(&b, "- Session length: %d minutes\n", data.Recommendation.SessionLengthMinutes)
	fmt.Fprintf(&b, "- Daily question target: %d\n", data.Recommendation.DailyQuestionTarget)
	for _, hint := range data.Recommendation.Hints {
		fmt.Fprintf(&b, "- %s\n", hint.Text)
	}
	b.WriteString("\n")

	b.WriteString("## Due Reviews\n\n")
	if len(data.DueReviews) == 0 {
		b.WriteString("Nothing due. Nice work.\n")
	} else {
		b.WriteString("| Content | Category | Mastery | Due |\n|---|---|---|---|\n")
		for _, entry := range data.DueReviews {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				entry.ContentID, entry.CategoryID, percent(entry.MasteryLevel),
				entry.NextReviewDate.Format("2006-01-02"))
		}
	}

	return b.String()
}

// WriteMarkdown renders the report into outputDir and returns the file path.
func WriteMarkdown(outputDir string, data Data) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", outputDir, err)
	}

	name := fmt.Sprintf("learning-report-%s-%s.md",
		data.Snapshot.UserID, data.Snapshot.GeneratedAt.Format("2006-01-02"))
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, []byte(RenderMarkdown(data)), 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}

func writeSubjects(b *strings.Builder, title string, subjects []analyzer.SubjectPerformance) {
	fmt.Fprintf(b, "### %s\n\n", title)
	if len(subjects) == 0 {
		b.WriteString("None detected yet.\n\n")
		return
	}
	b.WriteString("| Category | Accuracy | Events | Avg response |\n|---|---|---|---|\n")
	for _, subject := range subjects {
		fmt.Fprintf(b, "| %s | %s | %d | %.0f ms |\n",
			subject.CategoryID, percent(subject.Accuracy), subject.Events, subject.AvgResponseTimeMs)
	}
	b.WriteString("\n")
}

func percent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}
