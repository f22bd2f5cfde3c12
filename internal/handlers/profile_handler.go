package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/saeid-a/FitBuddyBack/internal/repository"
)

type ProfileHandler struct {
	userRepo *repository.UserRepository
}

func NewProfileHandler(userRepo *repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo}
}

type updateProfileRequest struct {
	Name               *string          `json:"name"`
	Username           *string          `json:"username"`
	Bio                *string          `json:"bio"`
	ProfileImage       *string          `json:"profile_image"`
	CoverImage         *string          `json:"cover_image"`
	FitnessLevel       *string          `json:"fitness_level"`
	PreferredExercises *[]string        `json:"preferred_exercises"`
	PreferredTime      *[]string        `json:"preferred_time"`
	Location           *models.Location `json:"location"`
}

func (h *ProfileHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userRepo.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list users"})
	}
	return c.JSON(fiber.Map{"users": users})
}

func (h *ProfileHandler) GetUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	user, err := h.userRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch user"})
	}

	return c.JSON(fiber.Map{"user": user})
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.FitnessLevel != nil && !models.IsValidFitnessLevel(*req.FitnessLevel) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid fitness level"})
	}

	user, err := h.userRepo.UpdatePartial(c.Context(), userID, repository.UpdateUserInput{
		Name:               req.Name,
		Username:           req.Username,
		Bio:                req.Bio,
		ProfileImage:       req.ProfileImage,
		CoverImage:         req.CoverImage,
		FitnessLevel:       req.FitnessLevel,
		PreferredExercises: req.PreferredExercises,
		PreferredTime:      req.PreferredTime,
		Location:           req.Location,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{"user": user})
}
