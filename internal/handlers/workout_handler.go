package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/saeid-a/FitBuddyBack/internal/services"
)

type workoutApplicationService interface {
	LogWorkout(ctx context.Context, userID string, input services.LogWorkoutInput) (*models.Workout, error)
	ListWorkouts(ctx context.Context, userID string) ([]models.Workout, error)
	GetWorkout(ctx context.Context, actorID, id string) (*models.Workout, error)
	DeleteWorkout(ctx context.Context, actorID, id string) error
	Progress(ctx context.Context, userID string, days int) ([]models.ProgressDay, error)
}

type WorkoutHandler struct {
	service workoutApplicationService
}

func NewWorkoutHandler(service workoutApplicationService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

type logWorkoutRequest struct {
	Name            string                   `json:"name"`
	Type            string                   `json:"type"`
	DurationMinutes int                      `json:"duration_minutes"`
	Calories        int                      `json:"calories"`
	Date            time.Time                `json:"date"`
	Notes           *string                  `json:"notes"`
	Exercises       []models.WorkoutExercise `json:"exercises"`
}

func (h *WorkoutHandler) LogWorkout(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req logWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	workout, err := h.service.LogWorkout(c.Context(), userID, services.LogWorkoutInput{
		Name:            req.Name,
		Type:            req.Type,
		DurationMinutes: req.DurationMinutes,
		Calories:        req.Calories,
		Date:            req.Date,
		Notes:           req.Notes,
		Exercises:       req.Exercises,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workouts, err := h.service.ListWorkouts(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"workouts": workouts})
}

func (h *WorkoutHandler) GetWorkout(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workout, err := h.service.GetWorkout(c.Context(), userID, c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) DeleteWorkout(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.service.DeleteWorkout(c.Context(), userID, c.Params("id")); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WorkoutHandler) Progress(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	days := parsePositiveInt(c.Query("days"), 0)
	progress, err := h.service.Progress(c.Context(), userID, days)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"progress": progress})
}
