package services

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPostStore struct {
	posts map[string]*models.Post
}

func newStubPostStore() *stubPostStore {
	return &stubPostStore{posts: make(map[string]*models.Post)}
}

func (s *stubPostStore) Insert(_ context.Context, post *models.Post) error {
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *stubPostStore) List(_ context.Context, limit, offset int) ([]models.Post, int, error) {
	all := make([]models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		all = append(all, *post)
	}
	total := len(all)
	if offset >= total {
		return []models.Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (s *stubPostStore) ListByUser(_ context.Context, userID string) ([]models.Post, error) {
	result := make([]models.Post, 0)
	for _, post := range s.posts {
		if post.UserID == userID {
			result = append(result, *post)
		}
	}
	return result, nil
}

func (s *stubPostStore) GetByID(_ context.Context, id string) (*models.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *post
	return &clone, nil
}

func (s *stubPostStore) AddLike(_ context.Context, postID, userID string) (*models.Post, error) {
	post, ok := s.posts[postID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if !post.LikedBy(userID) {
		post.Likes = append(post.Likes, userID)
	}
	clone := *post
	return &clone, nil
}

func (s *stubPostStore) RemoveLike(_ context.Context, postID, userID string) (*models.Post, error) {
	post, ok := s.posts[postID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	kept := post.Likes[:0]
	for _, id := range post.Likes {
		if id != userID {
			kept = append(kept, id)
		}
	}
	post.Likes = kept
	clone := *post
	return &clone, nil
}

func TestCreatePostTrimsContent(t *testing.T) {
	store := newStubPostStore()
	service := NewFeedService(store)

	post, err := service.CreatePost(context.Background(), "author", CreatePostInput{Content: "  leg day done  "})
	require.NoError(t, err)

	assert.Equal(t, "leg day done", post.Content)
	assert.Equal(t, "author", post.UserID)
	assert.Empty(t, post.Likes)

	// omitted images must bind as an empty array, not NULL
	stored := store.posts[post.ID]
	require.NotNil(t, stored.Images)
	require.NotNil(t, stored.Likes)
}

func TestCreatePostRejectsEmptyAndOversized(t *testing.T) {
	service := NewFeedService(newStubPostStore())

	_, err := service.CreatePost(context.Background(), "author", CreatePostInput{Content: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.CreatePost(context.Background(), "author", CreatePostInput{
		Content: strings.Repeat("x", maxPostContentLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLikePostIsIdempotent(t *testing.T) {
	store := newStubPostStore()
	service := NewFeedService(store)

	post, err := service.CreatePost(context.Background(), "author", CreatePostInput{Content: "morning run"})
	require.NoError(t, err)

	liked, err := service.LikePost(context.Background(), post.ID, "fan")
	require.NoError(t, err)
	assert.Equal(t, []string{"fan"}, liked.Likes)

	liked, err = service.LikePost(context.Background(), post.ID, "fan")
	require.NoError(t, err)
	assert.Equal(t, []string{"fan"}, liked.Likes)
}

func TestUnlikePostRemovesOnlyCaller(t *testing.T) {
	store := newStubPostStore()
	service := NewFeedService(store)

	post, err := service.CreatePost(context.Background(), "author", CreatePostInput{Content: "new PR"})
	require.NoError(t, err)

	_, err = service.LikePost(context.Background(), post.ID, "fan1")
	require.NoError(t, err)
	_, err = service.LikePost(context.Background(), post.ID, "fan2")
	require.NoError(t, err)

	updated, err := service.UnlikePost(context.Background(), post.ID, "fan1")
	require.NoError(t, err)
	assert.Equal(t, []string{"fan2"}, updated.Likes)
}

func TestLikePostUnknownPost(t *testing.T) {
	service := NewFeedService(newStubPostStore())

	_, err := service.LikePost(context.Background(), "ghost", "fan")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestListPostsValidatesPaging(t *testing.T) {
	service := NewFeedService(newStubPostStore())

	_, _, err := service.ListPosts(context.Background(), 0, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = service.ListPosts(context.Background(), 1, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListPostsReturnsTotal(t *testing.T) {
	store := newStubPostStore()
	service := NewFeedService(store)

	for _, content := range []string{"one", "two", "three"} {
		_, err := service.CreatePost(context.Background(), "author", CreatePostInput{Content: content})
		require.NoError(t, err)
	}

	page, total, err := service.ListPosts(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)
}
