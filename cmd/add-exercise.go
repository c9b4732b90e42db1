package cmd

import (
	"fmt"
	"time"

	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	"github.com/misterclayt0n/fittrack/internal/utils"
	"github.com/misterclayt0n/fittrack/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	exName     string
	exDistance float64
	exDuration time.Duration
	exWeight   float64
	exReps     int
	exSets     int
)

var addCardioCmd = &cobra.Command{
	Use:   "add-cardio",
	Short: "Add a cardio exercise to the current workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return addToDraft(cardioInput(cmd.Flags()))
	},
}

var addLiftingCmd = &cobra.Command{
	Use:   "add-lifting",
	Short: "Add a lifting exercise to the current workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return addToDraft(liftingInput(cmd.Flags()))
	},
}

func addToDraft(in validation.ExerciseInput) error {
	if !utils.DraftExists() {
		return fmt.Errorf("No workout in progress, run `fittrack start-workout` first")
	}

	ex, err := validation.Exercise(in)
	if err != nil {
		return fmt.Errorf("Invalid exercise: %w", err)
	}

	draft, err := utils.LoadDraft()
	if err != nil {
		return fmt.Errorf("Failed to load workout: %w", err)
	}
	draft.Exercises = append(draft.Exercises, ex)

	if err := utils.SaveDraft(draft); err != nil {
		return fmt.Errorf("Failed to save workout: %w", err)
	}

	fmt.Printf("✅ Added %s (%.1f pts)\n", ex.Name, scoring.ExerciseScore(ex))
	return nil
}

// Only flags the user actually passed end up set; the rest stay nil and
// score as missing.
func cardioInput(flags *pflag.FlagSet) validation.ExerciseInput {
	in := validation.ExerciseInput{Type: string(models.ExerciseTypeCardio), Name: exName}
	if flags.Changed("distance") {
		in.Distance = models.Float(exDistance)
	}
	if flags.Changed("duration") {
		in.Duration = models.Float(exDuration.Seconds())
	}
	return in
}

func liftingInput(flags *pflag.FlagSet) validation.ExerciseInput {
	in := validation.ExerciseInput{Type: string(models.ExerciseTypeLifting), Name: exName}
	if flags.Changed("weight") {
		in.Weight = models.Float(exWeight)
	}
	if flags.Changed("reps") {
		in.Reps = models.Int(exReps)
	}
	if flags.Changed("sets") {
		in.Sets = models.Int(exSets)
	}
	return in
}

func addCardioFlags(c *cobra.Command) {
	c.Flags().StringVarP(&exName, "name", "n", "", "Exercise name")
	c.Flags().Float64VarP(&exDistance, "distance", "D", 0, "Distance covered")
	c.Flags().DurationVarP(&exDuration, "duration", "t", 0, "Time taken (e.g. 30m, 1h5m)")
	c.MarkFlagRequired("name")
}

func addLiftingFlags(c *cobra.Command) {
	c.Flags().StringVarP(&exName, "name", "n", "", "Exercise name")
	c.Flags().Float64VarP(&exWeight, "weight", "w", 0, "Weight lifted")
	c.Flags().IntVarP(&exReps, "reps", "r", 0, "Reps per set")
	c.Flags().IntVarP(&exSets, "sets", "s", 0, "Number of sets")
	c.MarkFlagRequired("name")
}

func init() {
	addCardioFlags(addCardioCmd)
	addLiftingFlags(addLiftingCmd)
	rootCmd.AddCommand(addCardioCmd)
	rootCmd.AddCommand(addLiftingCmd)
}
