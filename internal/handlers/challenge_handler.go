package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/saeid-a/FitBuddyBack/internal/repository"
	"github.com/saeid-a/FitBuddyBack/internal/services"
)

type challengeApplicationService interface {
	CreateChallenge(ctx context.Context, creatorID string, input services.CreateChallengeInput) (*models.ChallengeDetail, error)
	ListChallenges(ctx context.Context) ([]models.ChallengeDetail, error)
	ListUserChallenges(ctx context.Context, userID string) ([]models.ChallengeDetail, error)
	GetChallenge(ctx context.Context, id string) (*models.ChallengeDetail, error)
	UpdateChallenge(ctx context.Context, actorID, id string, input repository.UpdateChallengeInput) (*models.ChallengeDetail, error)
	DeleteChallenge(ctx context.Context, actorID, id string) error
	JoinChallenge(ctx context.Context, userID, id string) (*models.ChallengeDetail, error)
	LeaveChallenge(ctx context.Context, userID, id string) (*models.ChallengeDetail, error)
	UpdateProgress(ctx context.Context, userID, id string, progress int) (*models.ChallengeDetail, error)
	GlobalLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
}

type ChallengeHandler struct {
	service challengeApplicationService
}

func NewChallengeHandler(service challengeApplicationService) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

type createChallengeRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Image         *string `json:"image"`
	Type          string  `json:"type"`
	Metric        string  `json:"metric"`
	GoalTarget    int     `json:"goal_target"`
	GoalUnit      string  `json:"goal_unit"`
	Reward        string  `json:"reward"`
	XPReward      int     `json:"xp_reward"`
	XPPerProgress int     `json:"xp_per_progress"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
}

type updateChallengeRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Image         *string `json:"image"`
	Type          *string `json:"type"`
	Metric        *string `json:"metric"`
	GoalTarget    *int    `json:"goal_target"`
	GoalUnit      *string `json:"goal_unit"`
	Reward        *string `json:"reward"`
	XPReward      *int    `json:"xp_reward"`
	XPPerProgress *int    `json:"xp_per_progress"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
}

type updateProgressRequest struct {
	Progress int `json:"progress"`
}

func (h *ChallengeHandler) ListChallenges(c *fiber.Ctx) error {
	if userID := c.Query("user_id"); userID != "" {
		challenges, err := h.service.ListUserChallenges(c.Context(), userID)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(fiber.Map{"challenges": challenges})
	}

	challenges, err := h.service.ListChallenges(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"challenges": challenges})
}

func (h *ChallengeHandler) GetChallenge(c *fiber.Ctx) error {
	challenge, err := h.service.GetChallenge(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"challenge": challenge})
}

func (h *ChallengeHandler) CreateChallenge(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start date"})
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end date"})
	}

	challenge, err := h.service.CreateChallenge(c.Context(), userID, services.CreateChallengeInput{
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		Type:          req.Type,
		Metric:        req.Metric,
		GoalTarget:    req.GoalTarget,
		GoalUnit:      req.GoalUnit,
		Reward:        req.Reward,
		XPReward:      req.XPReward,
		XPPerProgress: req.XPPerProgress,
		StartDate:     startDate,
		EndDate:       endDate,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"challenge": challenge})
}

func (h *ChallengeHandler) UpdateChallenge(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateChallengeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	input := repository.UpdateChallengeInput{
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		Type:          req.Type,
		Metric:        req.Metric,
		GoalTarget:    req.GoalTarget,
		GoalUnit:      req.GoalUnit,
		Reward:        req.Reward,
		XPReward:      req.XPReward,
		XPPerProgress: req.XPPerProgress,
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start date"})
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end date"})
		}
		input.EndDate = &endDate
	}

	challenge, err := h.service.UpdateChallenge(c.Context(), userID, c.Params("id"), input)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"challenge": challenge})
}

func (h *ChallengeHandler) DeleteChallenge(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.service.DeleteChallenge(c.Context(), userID, c.Params("id")); err != nil {
		return mapServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ChallengeHandler) JoinChallenge(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	challenge, err := h.service.JoinChallenge(c.Context(), userID, c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"challenge": challenge})
}

func (h *ChallengeHandler) LeaveChallenge(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	challenge, err := h.service.LeaveChallenge(c.Context(), userID, c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"challenge": challenge})
}

func (h *ChallengeHandler) UpdateProgress(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	challenge, err := h.service.UpdateProgress(c.Context(), userID, c.Params("id"), req.Progress)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"challenge": challenge})
}

func (h *ChallengeHandler) GlobalLeaderboard(c *fiber.Ctx) error {
	entries, err := h.service.GlobalLeaderboard(c.Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"leaderboard": entries})
}
