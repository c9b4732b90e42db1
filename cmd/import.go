package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	"github.com/misterclayt0n/fittrack/internal/utils"
	"github.com/misterclayt0n/fittrack/internal/validation"
	"github.com/spf13/cobra"
)

var importWorkoutCmd = &cobra.Command{
	Use:   "import-workout [file]",
	Short: "Save a whole workout described in a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile()
		if err != nil {
			return err
		}

		def, err := utils.ParseWorkoutFromTOML(args[0])
		if err != nil {
			return fmt.Errorf("invalid TOML format: %w", err)
		}

		w, err := workoutFromImport(def, p.ID)
		if err != nil {
			return err
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.InsertWorkoutWithExercises(cmd.Context(), w); err != nil {
			return fmt.Errorf("Failed to save workout: %w", err)
		}

		fmt.Printf("✅ Imported workout with %d exercises (%.1f pts)\n", len(w.Exercises), scoring.WorkoutScore(w))
		return nil
	},
}

func workoutFromImport(def *models.WorkoutImport, userID string) (models.Workout, error) {
	date := utils.Day(time.Now())
	if def.Date != "" {
		d, err := utils.ParseDay(def.Date)
		if err != nil {
			return models.Workout{}, fmt.Errorf("invalid date: %w", err)
		}
		date = d
	}

	w := models.Workout{
		ID:     uuid.New().String(),
		UserID: userID,
		Title:  strings.TrimSpace(def.Title),
		Notes:  strings.TrimSpace(def.Notes),
		Date:   date,
	}
	for i, exDef := range def.Exercises {
		ex, err := validation.ExerciseFromTOML(exDef)
		if err != nil {
			return models.Workout{}, fmt.Errorf("exercise %d: %w", i+1, err)
		}
		w.Exercises = append(w.Exercises, ex)
	}
	if len(w.Exercises) == 0 {
		return models.Workout{}, fmt.Errorf("workout has no exercises")
	}
	return w, nil
}

func init() {
	rootCmd.AddCommand(importWorkoutCmd)
}
