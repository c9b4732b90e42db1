package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	"github.com/misterclayt0n/fittrack/internal/utils"
	"github.com/spf13/cobra"
)

var showWorkoutCmd = &cobra.Command{
	Use:   "show-workout",
	Short: "Show the workout in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !utils.DraftExists() {
			return fmt.Errorf("No workout in progress")
		}

		draft, err := utils.LoadDraft()
		if err != nil {
			return fmt.Errorf("Failed to load workout: %w", err)
		}

		title := draft.Title
		if title == "" {
			title = models.DefaultTitle(draft.Exercises)
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("%s\n", green(title))
		fmt.Printf("%s %s\n", cyan("Date:"), utils.FormatDay(draft.Date))
		if draft.Notes != "" {
			fmt.Printf("%s %s\n", cyan("Notes:"), draft.Notes)
		}
		fmt.Printf("%s %s\n\n", red("Duration:"), time.Since(draft.StartTime).Round(time.Second))

		printExerciseTable(draft.Exercises)

		fmt.Printf("\n%s %.1f\n", green("Score:"), scoring.WorkoutScore(models.Workout{Exercises: draft.Exercises}))
		return nil
	},
}

// printExerciseTable prints exercises with 1-based indexes, the ones
// edit-exercise and delete-exercise take.
func printExerciseTable(exercises []models.Exercise) {
	const (
		indent     = "   "
		idxWidth   = 4
		nameWidth  = 22
		dataWidth  = 28
		scoreWidth = 10
	)
	border := func(l, m, r string) string {
		return indent + l +
			strings.Repeat("─", idxWidth) + m +
			strings.Repeat("─", nameWidth) + m +
			strings.Repeat("─", dataWidth) + m +
			strings.Repeat("─", scoreWidth) + r
	}

	fmt.Println(border("┌", "┬", "┐"))
	fmt.Printf(indent+"│%-*s│%-*s│%-*s│%-*s│\n", idxWidth, "#", nameWidth, "Exercise", dataWidth, "Details", scoreWidth, "Score")
	fmt.Println(border("├", "┼", "┤"))
	for i, ex := range exercises {
		fmt.Printf(indent+"│%-*d│%-*s│%-*s│%-*.1f│\n",
			idxWidth, i+1,
			nameWidth, truncate(ex.Name, nameWidth),
			dataWidth, describeExercise(ex),
			scoreWidth, scoring.ExerciseScore(ex),
		)
	}
	fmt.Println(border("└", "┴", "┘"))
}

func describeExercise(ex models.Exercise) string {
	var parts []string
	switch ex.Type {
	case models.ExerciseTypeCardio:
		if ex.Distance != nil {
			parts = append(parts, fmt.Sprintf("%.2f dist", *ex.Distance))
		}
		if ex.Duration != nil {
			parts = append(parts, (time.Duration(*ex.Duration) * time.Second).String())
		}
	case models.ExerciseTypeLifting:
		if ex.Weight != nil {
			parts = append(parts, fmt.Sprintf("%.1fkg", *ex.Weight))
		}
		if ex.Reps != nil && ex.Sets != nil {
			parts = append(parts, fmt.Sprintf("%d×%d", *ex.Sets, *ex.Reps))
		} else if ex.Reps != nil {
			parts = append(parts, fmt.Sprintf("%d reps", *ex.Reps))
		} else if ex.Sets != nil {
			parts = append(parts, fmt.Sprintf("%d sets", *ex.Sets))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func init() {
	rootCmd.AddCommand(showWorkoutCmd)
}
