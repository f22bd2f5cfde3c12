package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/models"
)

const workoutColumns = `id, user_id, name, type, duration_minutes, calories, date, notes,
	   exercises, created_at`

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) Insert(ctx context.Context, workout *models.Workout) error {
	exercises, err := json.Marshal(workout.Exercises)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO workouts (id, user_id, name, type, duration_minutes, calories, date, notes, exercises)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query,
		workout.ID,
		workout.UserID,
		workout.Name,
		workout.Type,
		workout.DurationMinutes,
		workout.Calories,
		workout.Date,
		workout.Notes,
		exercises,
	).Scan(&workout.CreatedAt)
}

func (r *WorkoutRepository) ListByUser(ctx context.Context, userID string) ([]models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM workouts
		WHERE user_id = $1
		ORDER BY date DESC, id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *workout)
	}
	return workouts, rows.Err()
}

func (r *WorkoutRepository) GetByID(ctx context.Context, id string) (*models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = $1`
	return scanWorkout(r.db.QueryRow(ctx, query, id))
}

func (r *WorkoutRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM workouts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *WorkoutRepository) ProgressByDay(ctx context.Context, userID string, since time.Time) ([]models.ProgressDay, error) {
	query := `
		SELECT date_trunc('day', date) AS day,
			   COUNT(*),
			   COALESCE(SUM(calories), 0),
			   COALESCE(SUM(duration_minutes), 0)
		FROM workouts
		WHERE user_id = $1 AND date >= $2
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]models.ProgressDay, 0)
	for rows.Next() {
		var day models.ProgressDay
		if err := rows.Scan(&day.Date, &day.Workouts, &day.Calories, &day.DurationMinutes); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func scanWorkout(row pgx.Row) (*models.Workout, error) {
	var workout models.Workout
	var exercises []byte
	err := row.Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Name,
		&workout.Type,
		&workout.DurationMinutes,
		&workout.Calories,
		&workout.Date,
		&workout.Notes,
		&exercises,
		&workout.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(exercises) > 0 {
		if err := json.Unmarshal(exercises, &workout.Exercises); err != nil {
			return nil, err
		}
	}
	return &workout, nil
}
