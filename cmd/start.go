package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/utils"
	"github.com/spf13/cobra"
)

var (
	startDate  string
	startTitle string
	startNotes string
)

var startCmd = &cobra.Command{
	Use:   "start-workout",
	Short: "Start tracking a new workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		if utils.DraftExists() {
			return fmt.Errorf("A workout is already in progress, end or cancel it first")
		}

		p, err := activeProfile()
		if err != nil {
			return err
		}

		date := utils.Day(time.Now())
		if startDate != "" {
			date, err = utils.ParseDay(startDate)
			if err != nil {
				return fmt.Errorf("Invalid date: %w", err)
			}
		}

		draft := &models.WorkoutDraft{
			WorkoutID: uuid.New().String(),
			UserID:    p.ID,
			Title:     strings.TrimSpace(startTitle),
			Notes:     strings.TrimSpace(startNotes),
			Date:      date,
			StartTime: time.Now().UTC(),
		}
		if err := utils.SaveDraft(draft); err != nil {
			return fmt.Errorf("Failed to save workout: %w", err)
		}

		fmt.Printf("✅ Started workout for %s\n", utils.FormatDay(date))
		return nil
	},
}

func init() {
	startCmd.Flags().StringVarP(&startDate, "date", "d", "", "Workout day (e.g. 2025-02-07 or 07/02/25), defaults to today")
	startCmd.Flags().StringVarP(&startTitle, "title", "t", "", "Workout title")
	startCmd.Flags().StringVarP(&startNotes, "notes", "n", "", "Free-form notes")
	rootCmd.AddCommand(startCmd)
}
