package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/report"
)

func newReportCommand() *cobra.Command {
	var userID string
	var toPDF bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a learning analytics report as markdown or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			ctx := cmd.Context()
			snapshot := app.engine.GetPatternSnapshot(ctx, userID)
			recommendation := app.engine.GetOptimalLearningTime(ctx, userID)
			due, err := app.engine.GetDueReviews(ctx, userID, 20)
			if err != nil {
				return err
			}
			userProfile, err := app.engine.GetProfile(ctx, userID)
			if err != nil {
				return err
			}

			path, err := report.WriteMarkdown(app.cfg.Reports.OutputDirectory, report.Data{
				Snapshot:       snapshot.Snapshot,
				Recommendation: recommendation.Recommendation,
				DueReviews:     due,
				Profile:        userProfile,
			})
			if err != nil {
				return err
			}

			if toPDF {
				pdfPath, err := report.ConvertMarkdownToPDF(path)
				if err != nil {
					return err
				}
				fmt.Printf("Report written to %s\n", pdfPath)
				return nil
			}
			fmt.Printf("Report written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().BoolVar(&toPDF, "pdf", false, "Also convert the report to PDF")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
