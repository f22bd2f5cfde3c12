package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/services"
)

func actorUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(string)
	return userID, ok && userID != ""
}

func parsePositiveInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// mapServiceError translates the service error taxonomy into HTTP responses.
// All of these are terminal outcomes; nothing here is retried server-side.
func mapServiceError(c *fiber.Ctx, err error) error {
	var transition *services.IllegalTransitionError
	switch {
	case errors.As(err, &transition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "This action is no longer available",
			"from":  transition.From,
			"to":    transition.To,
		})
	case errors.Is(err, services.ErrDuplicateMatch):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You already have a match with this user",
		})
	case errors.Is(err, services.ErrMatchNotAccepted):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only message users you have an accepted match with",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrNotParticipant):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Join the challenge before reporting progress",
		})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, services.ErrMatchNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This match no longer exists"})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrChallengeNotFound),
		errors.Is(err, services.ErrConversationNotFound),
		errors.Is(err, services.ErrWorkoutNotFound),
		errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
	}
}
