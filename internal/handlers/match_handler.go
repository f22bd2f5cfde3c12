package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitBuddyBack/internal/models"
)

type matchApplicationService interface {
	Score(ctx context.Context, userID, otherID string) (int, []string, error)
	ListMatches(ctx context.Context, userID string) ([]models.MatchDetail, error)
	ListPotentialMatches(ctx context.Context, userID string) ([]models.PotentialMatch, error)
	CreateMatch(ctx context.Context, initiatorID, recipientID string) (*models.Match, error)
	UpdateStatus(ctx context.Context, actorID, matchID string, next models.MatchStatus) (*models.Match, error)
}

type MatchHandler struct {
	service matchApplicationService
}

func NewMatchHandler(service matchApplicationService) *MatchHandler {
	return &MatchHandler{service: service}
}

type createMatchRequest struct {
	MatchedUserID string `json:"matched_user_id"`
}

type updateMatchStatusRequest struct {
	Status models.MatchStatus `json:"status"`
}

func (h *MatchHandler) ListMatches(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	matches, err := h.service.ListMatches(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"matches": matches})
}

func (h *MatchHandler) ListPotentialMatches(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	candidates, err := h.service.ListPotentialMatches(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"potential_matches": candidates})
}

func (h *MatchHandler) GetScore(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	otherID := c.Params("userId")
	score, common, err := h.service.Score(c.Context(), userID, otherID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"match_percentage": score,
		"common_interests": common,
	})
}

func (h *MatchHandler) CreateMatch(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	match, err := h.service.CreateMatch(c.Context(), userID, req.MatchedUserID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"match": match})
}

func (h *MatchHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateMatchStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !models.IsValidMatchStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid match status"})
	}

	match, err := h.service.UpdateStatus(c.Context(), userID, c.Params("id"), req.Status)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"match": match})
}

// Accept is shorthand for updating the status to accepted.
func (h *MatchHandler) Accept(c *fiber.Ctx) error {
	return h.setStatus(c, models.MatchAccepted)
}

// Decline is shorthand for updating the status to declined.
func (h *MatchHandler) Decline(c *fiber.Ctx) error {
	return h.setStatus(c, models.MatchDeclined)
}

func (h *MatchHandler) setStatus(c *fiber.Ctx, status models.MatchStatus) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	match, err := h.service.UpdateStatus(c.Context(), userID, c.Params("id"), status)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"match": match})
}
