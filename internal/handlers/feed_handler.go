package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/saeid-a/FitBuddyBack/internal/services"
)

type feedApplicationService interface {
	CreatePost(ctx context.Context, authorID string, input services.CreatePostInput) (*models.Post, error)
	ListPosts(ctx context.Context, page, limit int) ([]models.Post, int, error)
	ListUserPosts(ctx context.Context, userID string) ([]models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	LikePost(ctx context.Context, postID, userID string) (*models.Post, error)
	UnlikePost(ctx context.Context, postID, userID string) (*models.Post, error)
}

type FeedHandler struct {
	service feedApplicationService
}

func NewFeedHandler(service feedApplicationService) *FeedHandler {
	return &FeedHandler{service: service}
}

type createPostRequest struct {
	Content   string   `json:"content"`
	Images    []string `json:"images"`
	WorkoutID *string  `json:"workout_id"`
}

func (h *FeedHandler) ListPosts(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	posts, total, err := h.service.ListPosts(c.Context(), page, limit)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *FeedHandler) GetPost(c *fiber.Ctx) error {
	post, err := h.service.GetPost(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}

func (h *FeedHandler) ListUserPosts(c *fiber.Ctx) error {
	posts, err := h.service.ListUserPosts(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (h *FeedHandler) CreatePost(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	post, err := h.service.CreatePost(c.Context(), userID, services.CreatePostInput{
		Content:   req.Content,
		Images:    req.Images,
		WorkoutID: req.WorkoutID,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

func (h *FeedHandler) LikePost(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	post, err := h.service.LikePost(c.Context(), c.Params("id"), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}

func (h *FeedHandler) UnlikePost(c *fiber.Ctx) error {
	userID, ok := actorUserID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	post, err := h.service.UnlikePost(c.Context(), c.Params("id"), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{"post": post})
}
