package models

import "time"

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"` // Unique join code.
	MemberIDs []string  `json:"member_ids"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// IsMember reports whether userID belongs to the group.
func (g Group) IsMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// LeaderboardEntry is a read-only projection of a member's standing.
type LeaderboardEntry struct {
	UserID        string  `json:"user_id"`
	Username      string  `json:"username"`
	TotalScore    float64 `json:"total_score"`
	WorkoutsCount int     `json:"workouts_count"`
}
