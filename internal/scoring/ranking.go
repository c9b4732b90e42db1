package scoring

import (
	"sort"

	"github.com/misterclayt0n/fittrack/internal/models"
)

// SortByScoreDesc returns members ordered by total score, highest first.
// Members with equal scores keep their input order. The input slice is left
// untouched.
func SortByScoreDesc(members []models.User) []models.User {
	totals := make([]float64, len(members))
	idx := make([]int, len(members))
	for i, m := range members {
		totals[i] = RoundScore(UserTotalScore(m))
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return totals[idx[a]] > totals[idx[b]]
	})

	sorted := make([]models.User, len(members))
	for i, j := range idx {
		sorted[i] = members[j]
	}
	return sorted
}

// RankOf returns the 1-based rank of target among members, or 0 when target
// is not a member.
func RankOf(members []models.User, target string) int {
	for i, m := range SortByScoreDesc(members) {
		if m.ID == target {
			return i + 1
		}
	}
	return 0
}

// SortLeaderboard applies the same ordering policy to rows computed by the
// store: score descending, ties in arrival order.
func SortLeaderboard(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	sorted := make([]models.LeaderboardEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return RoundScore(sorted[i].TotalScore) > RoundScore(sorted[j].TotalScore)
	})
	return sorted
}

// LeaderboardRank mirrors RankOf for leaderboard rows.
func LeaderboardRank(entries []models.LeaderboardEntry, userID string) int {
	for i, e := range SortLeaderboard(entries) {
		if e.UserID == userID {
			return i + 1
		}
	}
	return 0
}

// Standings computes a group leaderboard locally from raw workouts, in the
// same shape the store returns.
func Standings(members []models.User) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(members))
	for _, m := range SortByScoreDesc(members) {
		entries = append(entries, models.LeaderboardEntry{
			UserID:        m.ID,
			Username:      m.Name,
			TotalScore:    UserTotalScore(m),
			WorkoutsCount: len(m.Workouts),
		})
	}
	return entries
}
