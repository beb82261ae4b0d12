package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/cognitive"
)

func newGuidanceCommand() *cobra.Command {
	var sessionID string
	var accuracy, elapsedMinutes float64
	var responseTimesMs []int

	cmd := &cobra.Command{
		Use:   "guidance",
		Short: "Classify in-session performance and advise continue or stop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if accuracy < 0 || accuracy > 1 {
				return fmt.Errorf("--accuracy must be between 0 and 1")
			}

			guidance := cognitive.ProvideLiveGuidance(sessionID, accuracy, elapsedMinutes, responseTimesMs)

			switch guidance.Status {
			case cognitive.StatusExcellent, cognitive.StatusGood:
				color.Green("Status: %s", guidance.Status)
			case cognitive.StatusPoor:
				color.Red("Status: %s", guidance.Status)
			default:
				color.Yellow("Status: %s", guidance.Status)
			}

			fmt.Println(guidance.RecommendedAction)
			if guidance.Continue {
				fmt.Println("Recommendation: continue")
			} else {
				fmt.Println("Recommendation: stop")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID")
	cmd.Flags().Float64Var(&accuracy, "accuracy", 0, "Current accuracy between 0 and 1")
	cmd.Flags().Float64Var(&elapsedMinutes, "elapsed", 0, "Minutes elapsed in the session")
	cmd.Flags().IntSliceVar(&responseTimesMs, "response-times", nil, "Recent response times in milliseconds")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("accuracy")

	return cmd
}
