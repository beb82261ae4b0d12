package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/analyzer"
)

func newAnalyzeCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Show the learning pattern snapshot for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			result := app.engine.GetPatternSnapshot(cmd.Context(), userID)
			printSnapshot(result.Snapshot, result.Degraded)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID to analyze")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func printSnapshot(snapshot analyzer.PatternSnapshot, degraded bool) {
	bold := color.New(color.Bold)

	bold.Printf("Learning patterns for %s\n", snapshot.UserID)
	if degraded {
		color.Yellow("Storage was unavailable; showing population defaults.")
	}

	fmt.Printf("Events: %d over %d active days (%.1f/day, consistency %.0f%%)\n",
		snapshot.Frequency.TotalEvents, snapshot.Frequency.ActiveDays,
		snapshot.Frequency.AverageDailyQuestions, snapshot.Frequency.ConsistencyScore*100)

	if snapshot.TimeOfDay.PeakFocusHour >= 0 {
		fmt.Printf("Peak focus hour: %02d:00\n", snapshot.TimeOfDay.PeakFocusHour)
	}

	if len(snapshot.Subjects.Strengths) > 0 {
		names := make([]string, 0, len(snapshot.Subjects.Strengths))
		for _, s := range snapshot.Subjects.Strengths {
			names = append(names, fmt.Sprintf("%s (%.0f%%)", s.CategoryID, s.Accuracy*100))
		}
		color.Green("Strengths: %s", strings.Join(names, ", "))
	}
	if len(snapshot.Subjects.Weaknesses) > 0 {
		names := make([]string, 0, len(snapshot.Subjects.Weaknesses))
		for _, s := range snapshot.Subjects.Weaknesses {
			names = append(names, fmt.Sprintf("%s (%.0f%%)", s.CategoryID, s.Accuracy*100))
		}
		color.Red("Weaknesses: %s", strings.Join(names, ", "))
	}

	fmt.Printf("Level: %s", snapshot.Difficulty.CurrentLevel)
	if snapshot.Difficulty.ReadyForNextLevel {
		fmt.Print(" (ready for the next level)")
	}
	fmt.Println()

	fmt.Printf("Streak: %d days now, %d longest\n",
		snapshot.Streaks.CurrentDays, snapshot.Streaks.LongestDays)
	fmt.Printf("Velocity: %.2f, seven-day accuracy: %.0f%%\n",
		snapshot.Velocity.Score, snapshot.Retention.SevenDayAccuracy*100)
}
