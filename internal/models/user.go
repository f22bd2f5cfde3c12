package models

import "time"

const (
	FitnessLevelBeginner     = "Beginner"
	FitnessLevelIntermediate = "Intermediate"
	FitnessLevelAdvanced     = "Advanced"
	FitnessLevelExpert       = "Expert"
)

func IsValidFitnessLevel(level string) bool {
	switch level {
	case FitnessLevelBeginner, FitnessLevelIntermediate, FitnessLevelAdvanced, FitnessLevelExpert:
		return true
	}
	return false
}

// Location is an optional point attached to a user profile. Only its
// presence matters for match scoring; no distance math happens server-side.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   *string `json:"address,omitempty"`
}

type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Username           string    `json:"username"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Bio                *string   `json:"bio,omitempty"`
	ProfileImage       *string   `json:"profile_image,omitempty"`
	CoverImage         *string   `json:"cover_image,omitempty"`
	FitnessLevel       *string   `json:"fitness_level,omitempty"`
	PreferredExercises []string  `json:"preferred_exercises"`
	PreferredTime      []string  `json:"preferred_time"`
	Location           *Location `json:"location,omitempty"`
	Followers          int       `json:"followers"`
	Following          int       `json:"following"`
	Workouts           int       `json:"workouts"`
	Points             int       `json:"points"`
	JoinedAt           time.Time `json:"joined_at"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UserSummary is the trimmed author/participant shape embedded in feed
// posts, matches and leaderboards.
type UserSummary struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID,
		Name:         u.Name,
		Username:     u.Username,
		ProfileImage: u.ProfileImage,
	}
}
