package models

import "time"

type Post struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Content   string       `json:"content"`
	Images    []string     `json:"images,omitempty"`
	WorkoutID *string      `json:"workout_id,omitempty"`
	Likes     []string     `json:"likes"`
	Comments  int          `json:"comments"`
	CreatedAt time.Time    `json:"created_at"`
	Author    *UserSummary `json:"user,omitempty"`
}

func (p *Post) LikedBy(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
