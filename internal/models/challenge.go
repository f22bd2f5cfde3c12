package models

import "time"

const (
	ChallengeStatusUpcoming  = "upcoming"
	ChallengeStatusActive    = "active"
	ChallengeStatusCompleted = "completed"
)

type Challenge struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Image         *string   `json:"image,omitempty"`
	Type          string    `json:"type"`
	Metric        string    `json:"metric"`
	GoalTarget    int       `json:"goal_target"`
	GoalUnit      string    `json:"goal_unit"`
	Reward        string    `json:"reward"`
	XPReward      int       `json:"xp_reward"`
	XPPerProgress int       `json:"xp_per_progress"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	CreatorID     string    `json:"creator_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Status is derived from the challenge window, never stored.
func (c *Challenge) Status(now time.Time) string {
	switch {
	case now.Before(c.StartDate):
		return ChallengeStatusUpcoming
	case now.After(c.EndDate):
		return ChallengeStatusCompleted
	default:
		return ChallengeStatusActive
	}
}

type ChallengeParticipant struct {
	ChallengeID string    `json:"challenge_id"`
	UserID      string    `json:"user_id"`
	Progress    int       `json:"progress"`
	Completed   bool      `json:"completed"`
	JoinedAt    time.Time `json:"joined_at"`
}

// ChallengeLeaderboardRow is derived from a participant row; XPEarned is
// capped at the challenge's total XP reward.
type ChallengeLeaderboardRow struct {
	UserID   string `json:"user_id"`
	Progress int    `json:"progress"`
	XPEarned int    `json:"xp_earned"`
}

type ChallengeDetail struct {
	Challenge
	Status       string                    `json:"status"`
	Participants []ChallengeParticipant    `json:"participants"`
	Leaderboard  []ChallengeLeaderboardRow `json:"leaderboard"`
}

// LeaderboardEntry ranks users by accumulated points across the app.
type LeaderboardEntry struct {
	User   UserSummary `json:"user"`
	Points int         `json:"points"`
	Rank   int         `json:"rank"`
}
