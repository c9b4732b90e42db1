package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	"github.com/spf13/cobra"
)

// details is a flag to enable verbose workout details.
var details bool

// calendarCmd prints the month grid. Training days are coloured by the
// workout title of that day, and a legend is printed below.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of training days with a legend mapping colors to workout titles",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		month := now.Month()
		year := now.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("invalid year: %s", args[1])
			}
			year = y
		}

		p, err := activeProfile()
		if err != nil {
			return err
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		all, err := st.FetchWorkoutsWithExercises(cmd.Context(), p.ID)
		if err != nil {
			return fmt.Errorf("failed to get workouts: %w", err)
		}

		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		lastOfMonth := firstOfMonth.AddDate(0, 1, -1)
		byDay := workoutsByDay(all, year, month)

		// Assign colours in a stable order so reruns look the same.
		var titles []string
		seen := make(map[string]bool)
		for _, ws := range byDay {
			for _, w := range ws {
				if !seen[w.Title] {
					seen[w.Title] = true
					titles = append(titles, w.Title)
				}
			}
		}
		sort.Strings(titles)

		colorPalette := []color.Attribute{
			color.FgRed, color.FgGreen, color.FgYellow,
			color.FgBlue, color.FgMagenta, color.FgCyan,
		}
		titleColors := make(map[string]func(a ...interface{}) string)
		for i, t := range titles {
			titleColors[t] = color.New(colorPalette[i%len(colorPalette)]).SprintFunc()
		}

		header := fmt.Sprintf("%s %d", month.String(), year)
		fmt.Println(padCenter(header, 20))
		fmt.Println("Su Mo Tu We Th Fr Sa")

		weekday := int(firstOfMonth.Weekday())
		for i := 0; i < weekday; i++ {
			fmt.Print("   ")
		}

		for day := 1; day <= lastOfMonth.Day(); day++ {
			dayStr := fmt.Sprintf("%2d", day)
			if ws, ok := byDay[day]; ok {
				dayStr = titleColors[ws[0].Title](dayStr + "*")
			}
			fmt.Printf("%s ", dayStr)
			weekday++
			if weekday%7 == 0 {
				fmt.Println()
			}
		}
		fmt.Print("\n\n")

		fmt.Println("Legend:")
		for _, t := range titles {
			fmt.Printf("  %s: %s\n", titleColors[t]("██"), t)
		}

		if details {
			fmt.Println("\nWorkout Details:")
			var days []int
			for d := range byDay {
				days = append(days, d)
			}
			sort.Ints(days)
			for _, day := range days {
				dayDate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				fmt.Printf("\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				for _, w := range byDay[day] {
					fmt.Printf("  %s %s | %d exercises | %.1f pts\n",
						shortID(w.ID), w.Title, len(w.Exercises), scoring.WorkoutScore(w))
				}
			}
		}

		return nil
	},
}

func workoutsByDay(workouts []models.Workout, year int, month time.Month) map[int][]models.Workout {
	byDay := make(map[int][]models.Workout)
	for _, w := range workouts {
		if w.Date.Year() == year && w.Date.Month() == month {
			byDay[w.Date.Day()] = append(byDay[w.Date.Day()], w)
		}
	}
	return byDay
}

// padCenter centers s in a field of the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&details, "details", "d", false, "Print additional workout details")
}
