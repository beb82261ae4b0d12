package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

type DifficultyFlag string

// Set implements pflag.Value.
func (d *DifficultyFlag) Set(v string) error {
	switch v {
	case string(event.DifficultyEasy), string(event.DifficultyMedium), string(event.DifficultyHard):
		*d = DifficultyFlag(v)
	default:
		return fmt.Errorf("invalid value %q, valid values are %q, %q or %q",
			v, event.DifficultyEasy, event.DifficultyMedium, event.DifficultyHard)
	}
	return nil
}

// String implements pflag.Value.
func (d *DifficultyFlag) String() string {
	if d == nil {
		return ""
	}
	return string(*d)
}

// Type implements pflag.Value.
func (d *DifficultyFlag) Type() string {
	return "DifficultyFlag"
}

var (
	_ pflag.Value = (*DifficultyFlag)(nil)
)

func newReviewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Manage spaced repetition reviews",
	}
	cmd.AddCommand(
		newReviewsListCommand(),
		newReviewsRecordCommand(),
		newReviewsAddCommand(),
	)
	return cmd
}

func newReviewsListCommand() *cobra.Command {
	var userID string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List due reviews, weakest and most overdue first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			due, err := app.engine.GetDueReviews(cmd.Context(), userID, limit)
			if err != nil {
				return err
			}
			if len(due) == 0 {
				color.Green("Nothing due for %s.", userID)
				return nil
			}

			for i, entry := range due {
				fmt.Printf("%2d. %s [%s] mastery %.0f%%, due %s (priority %.1f)\n",
					i+1, entry.ContentID, entry.CategoryID, entry.MasteryLevel*100,
					entry.NextReviewDate.Format("2006-01-02"), entry.PriorityScore)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of reviews to list")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newReviewsRecordCommand() *cobra.Command {
	var userID, contentID string
	var score float64
	var responseTimeMs int

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the outcome of one review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if score < 0 || score > 1 {
				return fmt.Errorf("--score must be between 0 and 1")
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			entry, err := app.engine.RecordReviewOutcome(cmd.Context(), userID, contentID, score, responseTimeMs)
			if err != nil {
				return err
			}

			if entry.IsMastered() {
				color.Green("%s is mastered. It leaves the active schedule.", entry.ContentID)
				return nil
			}
			fmt.Printf("%s: mastery %.0f%%, next review %s (interval %d days)\n",
				entry.ContentID, entry.MasteryLevel*100,
				entry.NextReviewDate.Format("2006-01-02"), entry.IntervalDays)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&contentID, "content", "", "Content item ID")
	cmd.Flags().Float64Var(&score, "score", 0, "Performance score between 0 and 1")
	cmd.Flags().IntVar(&responseTimeMs, "response-time", 0, "Response time in milliseconds")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("content")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newReviewsAddCommand() *cobra.Command {
	var userID, contentID, categoryID string
	difficulty := DifficultyFlag(event.DifficultyMedium)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Put a content item under spaced repetition",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			entry, err := app.engine.TrackContent(cmd.Context(), userID, contentID, categoryID, event.Difficulty(difficulty))
			if err != nil {
				return err
			}

			fmt.Printf("Tracking %s. First review on %s.\n",
				entry.ContentID, entry.NextReviewDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&contentID, "content", "", "Content item ID")
	cmd.Flags().StringVar(&categoryID, "category", "", "Category ID")
	cmd.Flags().Var(&difficulty, "difficulty", "Initial difficulty. Options: easy, medium, hard")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("content")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
