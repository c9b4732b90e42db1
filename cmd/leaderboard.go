package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/fatih/color"
	"github.com/misterclayt0n/fittrack/internal/models"
	"github.com/misterclayt0n/fittrack/internal/scoring"
	"github.com/misterclayt0n/fittrack/internal/storage"
	"github.com/spf13/cobra"
)

var verifyLeaderboard bool

// scoreTolerance absorbs float differences between SQL and Go sums.
const scoreTolerance = 1e-6

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [group]",
	Short: "Show a group's ranking by total score",
	Args:  cobra.RangeArgs(0, 1),
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

		groups, err := st.ListGroupsForUser(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("Failed to list groups: %w", err)
		}
		selector := ""
		if len(args) == 1 {
			selector = args[0]
		}
		g, err := pickGroup(groups, selector)
		if err != nil {
			return err
		}

		entries, err := st.GroupLeaderboard(ctx, g.ID)
		if err != nil {
			return fmt.Errorf("Failed to load leaderboard: %w", err)
		}
		entries = scoring.SortLeaderboard(entries)

		printBoxedHeader(g.Name)
		printLeaderboard(entries, p.ID)

		if verifyLeaderboard {
			mismatches, err := verifyStandings(ctx, st, g.ID, entries)
			if err != nil {
				return err
			}
			if mismatches > 0 {
				fmt.Println(color.New(color.FgRed).Sprintf("\n%d rows differ from the locally computed standings", mismatches))
			} else {
				fmt.Println(color.New(color.FgGreen).Sprint("\nLeaderboard matches the locally computed standings"))
			}
		}
		return nil
	},
}

func printLeaderboard(entries []models.LeaderboardEntry, me string) {
	highlight := color.New(color.FgGreen, color.Bold).SprintFunc()
	for i, e := range entries {
		name := e.Username
		if name == "" {
			name = shortID(e.UserID)
		}
		line := fmt.Sprintf("  %2d. %-20s %10.1f pts  %3d workouts", i+1, name, e.TotalScore, e.WorkoutsCount)
		if e.UserID == me {
			line = highlight(line)
		}
		fmt.Println(line)
	}
}

// verifyStandings recomputes the leaderboard from raw workouts and counts
// rows that disagree with the store's aggregation.
func verifyStandings(ctx context.Context, st *storage.Storage, groupID string, entries []models.LeaderboardEntry) (int, error) {
	members, err := st.LoadMembers(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("Failed to load members: %w", err)
	}
	return compareStandings(entries, scoring.Standings(members)), nil
}

func compareStandings(server, local []models.LeaderboardEntry) int {
	mismatches := 0
	if len(server) != len(local) {
		logger.Warn("leaderboard size differs",
			slog.Int("server", len(server)), slog.Int("local", len(local)))
		mismatches++
	}

	for i := 0; i < len(server) && i < len(local); i++ {
		s, l := server[i], local[i]
		if s.UserID != l.UserID ||
			s.WorkoutsCount != l.WorkoutsCount ||
			math.Abs(s.TotalScore-l.TotalScore) > scoreTolerance {
			logger.Warn("leaderboard row differs",
				slog.Int("position", i+1),
				slog.String("server_user", s.UserID),
				slog.Float64("server_score", s.TotalScore),
				slog.String("local_user", l.UserID),
				slog.Float64("local_score", l.TotalScore))
			mismatches++
		}
	}
	return mismatches
}

func init() {
	leaderboardCmd.Flags().BoolVar(&verifyLeaderboard, "verify", false, "Cross-check the ranking against scores computed from raw workouts")
	rootCmd.AddCommand(leaderboardCmd)
}
