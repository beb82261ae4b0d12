package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRecommendCommand() *cobra.Command {
	var userID, contentID string

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Show study recommendations and personalized hints",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			result := app.engine.GetOptimalLearningTime(cmd.Context(), userID)
			if result.Degraded {
				color.Yellow("Storage was unavailable; showing population defaults.")
			}

			recommendation := result.Recommendation
			fmt.Printf("Best study hour: %02d:00\n", recommendation.BestHour)
			fmt.Printf("Session length: %d minutes\n", recommendation.SessionLengthMinutes)
			fmt.Printf("Daily question target: %d\n", recommendation.DailyQuestionTarget)

			hints := app.engine.GetPersonalizedHints(cmd.Context(), userID, contentID)
			if len(hints) > 0 {
				fmt.Println()
				for _, hint := range hints {
					fmt.Printf("- %s\n", hint.Text)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&contentID, "content", "", "Content item to prioritize hints for")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
