package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show total score, workout count, distance, volume, week streak and group ranks",
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

		user, err := st.LoadUser(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		var distance, volume float64
		for _, w := range user.Workouts {
			for _, ex := range w.Exercises {
				switch ex.Type {
				case models.ExerciseTypeCardio:
					if ex.Distance != nil {
						distance += *ex.Distance
					}
				case models.ExerciseTypeLifting:
					if ex.Weight != nil && ex.Reps != nil && ex.Sets != nil {
						volume += *ex.Weight * float64(*ex.Reps) * float64(*ex.Sets)
					}
				}
			}
		}

		printBoxedHeader("STATUS")

		printMetric("Total score", fmt.Sprintf("%.1f pts", scoring.UserTotalScore(*user)))
		printMetric("Total workouts", len(user.Workouts))
		printMetric("Distance covered", fmt.Sprintf("%.1f", distance))
		printMetric("Total weight lifted", fmt.Sprintf("%.1f kg", volume))
		printMetric("Week streak", fmt.Sprintf("%d weeks", computeWeekStreak(user.Workouts, time.Now())))
		fmt.Println()

		groups, err := st.ListGroupsForUser(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
		if len(groups) == 0 {
			return nil
		}

		fmt.Println(color.New(color.FgGreen, color.Bold).Sprint("Group ranks:"))
		for _, g := range groups {
			entries, err := st.GroupLeaderboard(ctx, g.ID)
			if err != nil {
				return fmt.Errorf("failed to load leaderboard for %s: %w", g.Name, err)
			}
			entries = scoring.SortLeaderboard(entries)
			fmt.Printf("  • %s: #%d of %d\n",
				color.New(color.FgMagenta, color.Bold).Sprint(g.Name),
				scoring.LeaderboardRank(entries, p.ID),
				len(entries))
		}
		fmt.Println()

		return nil
	},
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + padCenter(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

// computeWeekStreak counts consecutive ISO weeks, ending with now's week,
// that have at least one workout. An empty current week still counts the
// streak leading up to it.
func computeWeekStreak(workouts []models.Workout, now time.Time) int {
	weeks := make(map[string]bool)
	for _, w := range workouts {
		weeks[weekKey(w.Date)] = true
	}

	if !weeks[weekKey(now)] {
		now = now.AddDate(0, 0, -7)
	}

	streak := 0
	for weeks[weekKey(now)] {
		streak++
		now = now.AddDate(0, 0, -7)
	}
	return streak
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-%02d", year, week)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
