package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/saeid-a/FitBuddyBack/internal/repository"
)

const (
	pointsPerWorkout    = 10
	defaultProgressDays = 30
	maxProgressDays     = 365
)

type workoutStore interface {
	Insert(ctx context.Context, workout *models.Workout) error
	ListByUser(ctx context.Context, userID string) ([]models.Workout, error)
	GetByID(ctx context.Context, id string) (*models.Workout, error)
	Delete(ctx context.Context, id string) error
	ProgressByDay(ctx context.Context, userID string, since time.Time) ([]models.ProgressDay, error)
}

type WorkoutService struct {
	db       *pgxpool.Pool
	workouts workoutStore
}

func NewWorkoutService(db *pgxpool.Pool, workouts workoutStore) *WorkoutService {
	return &WorkoutService{db: db, workouts: workouts}
}

type LogWorkoutInput struct {
	Name            string
	Type            string
	DurationMinutes int
	Calories        int
	Date            time.Time
	Notes           *string
	Exercises       []models.WorkoutExercise
}

// LogWorkout stores the entry and bumps the user's workout counter and
// points in the same transaction.
func (s *WorkoutService) LogWorkout(ctx context.Context, userID string, input LogWorkoutInput) (*models.Workout, error) {
	if strings.TrimSpace(input.Name) == "" || input.DurationMinutes < 0 || input.Calories < 0 {
		return nil, ErrInvalidInput
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	workout := &models.Workout{
		ID:              uuid.NewString(),
		UserID:          userID,
		Name:            strings.TrimSpace(input.Name),
		Type:            defaultString(input.Type, "Workout"),
		DurationMinutes: input.DurationMinutes,
		Calories:        input.Calories,
		Date:            date,
		Notes:           input.Notes,
		Exercises:       input.Exercises,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txWorkoutRepo := repository.NewWorkoutRepository(tx)
	txUserRepo := repository.NewUserRepository(tx)

	if err := txWorkoutRepo.Insert(ctx, workout); err != nil {
		return nil, err
	}
	if err := txUserRepo.AddWorkout(ctx, userID, pointsPerWorkout); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return workout, nil
}

func (s *WorkoutService) ListWorkouts(ctx context.Context, userID string) ([]models.Workout, error) {
	return s.workouts.ListByUser(ctx, userID)
}

func (s *WorkoutService) GetWorkout(ctx context.Context, actorID, id string) (*models.Workout, error) {
	workout, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if workout.UserID != actorID {
		return nil, ErrForbidden
	}
	return workout, nil
}

func (s *WorkoutService) DeleteWorkout(ctx context.Context, actorID, id string) error {
	workout, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}
	if workout.UserID != actorID {
		return ErrForbidden
	}
	return s.workouts.Delete(ctx, id)
}

// Progress rolls up the user's workouts per day over the requested window.
func (s *WorkoutService) Progress(ctx context.Context, userID string, days int) ([]models.ProgressDay, error) {
	if days <= 0 {
		days = defaultProgressDays
	}
	if days > maxProgressDays {
		days = maxProgressDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.workouts.ProgressByDay(ctx, userID, since)
}

func (s *WorkoutService) lookup(ctx context.Context, id string) (*models.Workout, error) {
	workout, err := s.workouts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}
