package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	"github.com/misterclayt0n/fittrack/internal/storage"
	"github.com/misterclayt0n/fittrack/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var editExerciseCmd = &cobra.Command{
	Use:   "edit-exercise [workout-id] [exercise-index]",
	Short: "Replace an exercise of a saved workout; unset flags keep their value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		w, idx, err := lookupExercise(ctx, st, args[0], args[1])
		if err != nil {
			return err
		}

		old := w.Exercises[idx]
		in := mergeExerciseFlags(old, cmd.Flags())
		ex, err := validation.ExerciseWithID(old.ID, in)
		if err != nil {
			return fmt.Errorf("Invalid exercise: %w", err)
		}

		if err := st.ReplaceExercise(ctx, w.ID, ex); err != nil {
			return fmt.Errorf("Failed to update exercise: %w", err)
		}

		w.Exercises[idx] = ex
		fmt.Printf("✅ Updated %s: %.1f → %.1f pts (workout now %.1f pts)\n",
			ex.Name, scoring.ExerciseScore(old), scoring.ExerciseScore(ex), scoring.WorkoutScore(*w))
		return nil
	},
}

var deleteExerciseCmd = &cobra.Command{
	Use:   "delete-exercise [workout-id] [exercise-index]",
	Short: "Delete an exercise from a saved workout; the workout goes with its last exercise",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		w, idx, err := lookupExercise(ctx, st, args[0], args[1])
		if err != nil {
			return err
		}

		ex := w.Exercises[idx]
		workoutDeleted, err := st.DeleteExercise(ctx, w.ID, ex.ID)
		if err != nil {
			return fmt.Errorf("Failed to delete exercise: %w", err)
		}

		if workoutDeleted {
			fmt.Printf("✅ Deleted %s and its now empty workout\n", ex.Name)
		} else {
			fmt.Printf("✅ Deleted %s\n", ex.Name)
		}
		return nil
	},
}

var deleteWorkoutCmd = &cobra.Command{
	Use:   "delete-workout [workout-id]",
	Short: "Delete a saved workout and all of its exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p, err := activeProfile()
		if err != nil {
			return err
		}

		st, err := openStorage(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		workouts, err := st.FetchWorkoutsWithExercises(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to retrieve workouts: %w", err)
		}
		id, err := resolveWorkoutID(workouts, args[0])
		if err != nil {
			return err
		}

		if err := st.DeleteWorkout(ctx, id); err != nil {
			return fmt.Errorf("Failed to delete workout: %w", err)
		}

		fmt.Printf("✅ Deleted workout %s\n", shortID(id))
		return nil
	},
}

// lookupExercise resolves a workout of the active profile and a 1-based
// exercise index inside it.
func lookupExercise(ctx context.Context, st *storage.Storage, workoutArg, indexArg string) (*models.Workout, int, error) {
	p, err := activeProfile()
	if err != nil {
		return nil, 0, err
	}

	idx, err := strconv.Atoi(indexArg)
	if err != nil || idx < 1 {
		return nil, 0, fmt.Errorf("Invalid exercise index. Must be a positive integer")
	}
	idx--

	workouts, err := st.FetchWorkoutsWithExercises(ctx, p.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve workouts: %w", err)
	}
	id, err := resolveWorkoutID(workouts, workoutArg)
	if err != nil {
		return nil, 0, err
	}

	w, err := st.GetWorkout(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("Failed to load workout: %w", err)
	}
	if idx >= len(w.Exercises) {
		return nil, 0, fmt.Errorf("Exercise index out of range")
	}
	return w, idx, nil
}

// mergeExerciseFlags starts from ex and overrides whatever flags were passed.
func mergeExerciseFlags(ex models.Exercise, flags *pflag.FlagSet) validation.ExerciseInput {
	in := validation.ExerciseInput{
		Type:     string(ex.Type),
		Name:     ex.Name,
		Duration: ex.Duration,
		Distance: ex.Distance,
		Weight:   ex.Weight,
		Reps:     ex.Reps,
		Sets:     ex.Sets,
	}
	if flags.Changed("name") {
		in.Name = exName
	}
	if flags.Changed("distance") {
		in.Distance = models.Float(exDistance)
	}
	if flags.Changed("duration") {
		in.Duration = models.Float(exDuration.Seconds())
	}
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

func init() {
	f := editExerciseCmd.Flags()
	f.StringVarP(&exName, "name", "n", "", "Exercise name")
	f.Float64VarP(&exDistance, "distance", "D", 0, "Distance covered (cardio)")
	f.DurationVarP(&exDuration, "duration", "t", 0, "Time taken (cardio)")
	f.Float64VarP(&exWeight, "weight", "w", 0, "Weight lifted (lifting)")
	f.IntVarP(&exReps, "reps", "r", 0, "Reps per set (lifting)")
	f.IntVarP(&exSets, "sets", "s", 0, "Number of sets (lifting)")

	rootCmd.AddCommand(editExerciseCmd)
	rootCmd.AddCommand(deleteExerciseCmd)
	rootCmd.AddCommand(deleteWorkoutCmd)
}
