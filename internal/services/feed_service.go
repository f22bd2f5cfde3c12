package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/models"
)

const maxPostContentLength = 2000

type postStore interface {
	Insert(ctx context.Context, post *models.Post) error
	List(ctx context.Context, limit, offset int) ([]models.Post, int, error)
	ListByUser(ctx context.Context, userID string) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	AddLike(ctx context.Context, postID, userID string) (*models.Post, error)
	RemoveLike(ctx context.Context, postID, userID string) (*models.Post, error)
}

type FeedService struct {
	posts postStore
}

func NewFeedService(posts postStore) *FeedService {
	return &FeedService{posts: posts}
}

type CreatePostInput struct {
	Content   string
	Images    []string
	WorkoutID *string
}

func (s *FeedService) CreatePost(ctx context.Context, authorID string, input CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" || len(content) > maxPostContentLength {
		return nil, ErrInvalidInput
	}

	images := input.Images
	if images == nil {
		// a nil slice binds as SQL NULL; the column is NOT NULL
		images = []string{}
	}

	post := &models.Post{
		ID:        uuid.NewString(),
		UserID:    authorID,
		Content:   content,
		Images:    images,
		WorkoutID: input.WorkoutID,
		Likes:     []string{},
	}
	if err := s.posts.Insert(ctx, post); err != nil {
		return nil, err
	}

	return s.getPost(ctx, post.ID)
}

func (s *FeedService) ListPosts(ctx context.Context, page, limit int) ([]models.Post, int, error) {
	if page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.posts.List(ctx, limit, (page-1)*limit)
}

func (s *FeedService) ListUserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

func (s *FeedService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return s.getPost(ctx, id)
}

func (s *FeedService) LikePost(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := s.posts.AddLike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *FeedService) UnlikePost(ctx context.Context, postID, userID string) (*models.Post, error) {
	post, err := s.posts.RemoveLike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (s *FeedService) getPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}
