package cmd

import (
	"fmt"

	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	"github.com/misterclayt0n/fittrack/internal/utils"
	"github.com/spf13/cobra"
)

var endWorkoutCmd = &cobra.Command{
	Use:   "end-workout",
	Short: "Save the workout in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.DraftExists() {
			return fmt.Errorf("No workout in progress")
		}

		draft, err := utils.LoadDraft()
		if err != nil {
			return fmt.Errorf("Failed to load workout: %w", err)
		}
		if len(draft.Exercises) == 0 {
			return fmt.Errorf("Add at least one exercise before ending the workout, or cancel it")
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		w := models.Workout{
			ID:        draft.WorkoutID,
			UserID:    draft.UserID,
			Title:     draft.Title,
			Notes:     draft.Notes,
			Date:      draft.Date,
			Exercises: draft.Exercises,
		}
		if err := st.InsertWorkoutWithExercises(cmd.Context(), w); err != nil {
			return fmt.Errorf("Failed to save workout: %w", err)
		}

		if err := utils.ClearDraft(); err != nil {
			return fmt.Errorf("Failed to clear workout: %w", err)
		}

		fmt.Printf("✅ Workout saved (%.1f pts)\n", scoring.WorkoutScore(w))
		return nil
	},
}

var cancelWorkoutCmd = &cobra.Command{
	Use:   "cancel-workout",
	Short: "Discard the workout in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.DraftExists() {
			return fmt.Errorf("No workout in progress")
		}
		if err := utils.ClearDraft(); err != nil {
			return fmt.Errorf("Failed to cancel workout: %w", err)
		}
		fmt.Println("✅ Workout discarded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(endWorkoutCmd)
	rootCmd.AddCommand(cancelWorkoutCmd)
}
