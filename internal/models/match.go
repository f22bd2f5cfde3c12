package models

import "time"

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchDeclined MatchStatus = "declined"
)

func IsValidMatchStatus(status MatchStatus) bool {
	switch status {
	case MatchPending, MatchAccepted, MatchDeclined:
		return true
	}
	return false
}

// Match pairs the initiating user with the matched user. Exactly one record
// exists per unordered pair; score and common interests are computed once at
// creation and never recomputed.
type Match struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	MatchedUserID   string      `json:"matched_user_id"`
	Status          MatchStatus `json:"status"`
	MatchPercentage int         `json:"match_percentage"`
	CommonInterests []string    `json:"common_interests,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OtherUserID returns the participant on the opposite side of the pair.
func (m *Match) OtherUserID(userID string) string {
	if m.UserID == userID {
		return m.MatchedUserID
	}
	return m.UserID
}

func (m *Match) HasParticipant(userID string) bool {
	return m.UserID == userID || m.MatchedUserID == userID
}

type MatchDetail struct {
	Match
	User        *UserSummary `json:"user,omitempty"`
	MatchedUser *UserSummary `json:"matched_user,omitempty"`
}

// PotentialMatch is a candidate partner the user has no match record with
// yet, scored as if a match were created now.
type PotentialMatch struct {
	User            User     `json:"user"`
	MatchPercentage int      `json:"match_percentage"`
	CommonInterests []string `json:"common_interests,omitempty"`
}
