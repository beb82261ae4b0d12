package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and recompute long-run learning profiles",
	}
	cmd.AddCommand(newProfileShowCommand(), newProfileRecomputeCommand())
	return cmd
}

func newProfileShowCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored learning profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			p, err := app.engine.GetProfile(cmd.Context(), userID)
			if err != nil {
				return err
			}

			fmt.Printf("Profile for %s\n", p.UserID)
			fmt.Printf("Chronotype: %s (peak hour %02d:00)\n", p.Chronotype, p.PeakHour)
			fmt.Printf("Attention span: %d minutes, optimal session: %d minutes\n",
				p.AttentionSpanMinutes, p.OptimalSessionMinutes)
			fmt.Printf("Cognitive load tolerance: %.1f/10\n", p.CognitiveLoadTolerance)
			fmt.Printf("Forgetting curve: decay %.3f, consolidation %.2f\n",
				p.DecayRate, p.ConsolidationFactor)
			fmt.Printf("Last recomputed: %s\n", p.RecomputedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newProfileRecomputeCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild the profile from the recent event window",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			p, err := app.engine.RecomputeProfile(cmd.Context(), userID)
			if err != nil {
				return err
			}

			fmt.Printf("Recomputed profile for %s: chronotype %s, decay %.3f\n",
				p.UserID, p.Chronotype, p.DecayRate)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
