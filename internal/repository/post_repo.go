package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/models"
)

const postColumns = `p.id, p.user_id, p.content, p.images, p.workout_id, p.likes, p.comments,
	   p.created_at, u.name, u.username, u.profile_image`

type PostRepository struct {
	db DBTX
}

func NewPostRepository(db DBTX) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Insert(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, user_id, content, images, workout_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query,
		post.ID,
		post.UserID,
		post.Content,
		post.Images,
		post.WorkoutID,
	).Scan(&post.CreatedAt)
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]models.Post, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`
	return scanPost(r.db.QueryRow(ctx, query, id))
}

// AddLike is idempotent; liking an already-liked post leaves it unchanged.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	query := `
		UPDATE posts p
		SET likes = CASE WHEN $2 = ANY(p.likes) THEN p.likes ELSE array_append(p.likes, $2) END
		FROM users u
		WHERE p.id = $1 AND u.id = p.user_id
		RETURNING ` + postColumns
	return scanPost(r.db.QueryRow(ctx, query, postID, userID))
}

func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID string) (*models.Post, error) {
	query := `
		UPDATE posts p
		SET likes = array_remove(p.likes, $2)
		FROM users u
		WHERE p.id = $1 AND u.id = p.user_id
		RETURNING ` + postColumns
	return scanPost(r.db.QueryRow(ctx, query, postID, userID))
}

func collectPosts(rows pgx.Rows) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	return posts, rows.Err()
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	var author models.UserSummary
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&post.Images,
		&post.WorkoutID,
		&post.Likes,
		&post.Comments,
		&post.CreatedAt,
		&author.Name,
		&author.Username,
		&author.ProfileImage,
	)
	if err != nil {
		return nil, err
	}
	author.ID = post.UserID
	post.Author = &author
	return &post, nil
}
