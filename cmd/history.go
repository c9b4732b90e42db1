package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	"github.com/misterclayt0n/fittrack/internal/utils"
	"github.com/spf13/cobra"
)

var (
	filterDay     string
	filterType    string
	historyDetail bool
)

// historyCmd lists saved workouts, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display workout history, optionally filtered by day and/or exercise type",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := activeProfile()
		if err != nil {
			return err
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		workouts, err := st.FetchWorkoutsWithExercises(cmd.Context(), p.ID)
		if err != nil {
			return fmt.Errorf("failed to retrieve workouts: %w", err)
		}

		if filterDay != "" {
			day, err := utils.ParseDay(filterDay)
			if err != nil {
				return fmt.Errorf("failed to parse day: %w", err)
			}
			workouts = filterWorkouts(workouts, func(w models.Workout) bool {
				return w.Date.Equal(day)
			})
		}

		// Case insensitive filtering by exercise type.
		if filterType != "" {
			workouts = filterWorkouts(workouts, func(w models.Workout) bool {
				for _, ex := range w.Exercises {
					if strings.EqualFold(string(ex.Type), filterType) {
						return true
					}
				}
				return false
			})
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts found")
			return nil
		}

		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		for _, w := range workouts {
			fmt.Printf("%s  %s  %s | %d exercises | %.1f pts\n",
				utils.FormatDay(w.Date),
				green(w.Title),
				shortID(w.ID),
				len(w.Exercises),
				scoring.WorkoutScore(w),
			)
			if historyDetail {
				if w.Notes != "" {
					fmt.Printf("   %s\n", w.Notes)
				}
				printExerciseTable(w.Exercises)
				fmt.Println()
			}
		}

		return nil
	},
}

func filterWorkouts(workouts []models.Workout, keep func(models.Workout) bool) []models.Workout {
	var out []models.Workout
	for _, w := range workouts {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// shortID is the prefix shown in listings; commands accept any unique prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveWorkoutID finds the workout whose ID equals or uniquely starts with
// prefix.
func resolveWorkoutID(workouts []models.Workout, prefix string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", fmt.Errorf("workout id is empty")
	}

	var matches []string
	for _, w := range workouts {
		if w.ID == prefix {
			return w.ID, nil
		}
		if strings.HasPrefix(w.ID, prefix) {
			matches = append(matches, w.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no workout matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches %d workouts, use a longer prefix", prefix, len(matches))
	}
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&filterDay, "day", "d", "", "Filter by day (e.g. 2025-02-07 or 07/02/25)")
	historyCmd.Flags().StringVarP(&filterType, "type", "t", "", "Only workouts containing this exercise type (cardio or lifting)")
	historyCmd.Flags().BoolVarP(&historyDetail, "details", "v", false, "Print the exercises of every workout")
}
