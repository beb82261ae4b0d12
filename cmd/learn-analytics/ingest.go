package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yoshihirosugibuchi-creator/ai-learning-platform-sub000/internal/event"
)

// ingestFile is the on-disk batch format: one JSON document carrying both
// source record kinds.
type ingestFile struct {
	QuizAnswers    []event.RawQuizAnswer    `json:"quiz_answers"`
	CourseSessions []event.RawCourseSession `json:"course_sessions"`
}

func newIngestCommand() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Normalize and store a batch of session records from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", filePath, err)
			}
			var batch ingestFile
			if err := json.Unmarshal(data, &batch); err != nil {
				return fmt.Errorf("failed to parse %s: %w", filePath, err)
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.close()

			quiz, err := app.engine.IngestQuizAnswers(cmd.Context(), batch.QuizAnswers)
			if err != nil {
				return err
			}
			course, err := app.engine.IngestCourseSessions(cmd.Context(), batch.CourseSessions)
			if err != nil {
				return err
			}

			color.Green("Stored %d events.", quiz.Stored+course.Stored)
			if dropped := quiz.Dropped + course.Dropped; dropped > 0 {
				color.Yellow("Dropped %d records with unresolved categories.", dropped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "Path to a JSON batch of session records")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
