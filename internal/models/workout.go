package models

import "time"

type WorkoutExercise struct {
	Name            string   `json:"name"`
	Sets            int      `json:"sets"`
	Reps            *int     `json:"reps,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	DurationSeconds *int     `json:"duration_seconds,omitempty"`
	Distance        *float64 `json:"distance,omitempty"`
}

type Workout struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Name            string            `json:"name"`
	Type            string            `json:"type"`
	DurationMinutes int               `json:"duration_minutes"`
	Calories        int               `json:"calories"`
	Date            time.Time         `json:"date"`
	Notes           *string           `json:"notes,omitempty"`
	Exercises       []WorkoutExercise `json:"exercises"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ProgressDay is a per-day rollup of a user's logged workouts.
type ProgressDay struct {
	Date            time.Time `json:"date"`
	Workouts        int       `json:"workouts"`
	Calories        int       `json:"calories"`
	DurationMinutes int       `json:"duration_minutes"`
}
