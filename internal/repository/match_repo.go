package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/models"
)

const matchColumns = `id, user_id, matched_user_id, status, match_percentage, common_interests,
	   created_at, updated_at`

type MatchRepository struct {
	db DBTX
}

func NewMatchRepository(db DBTX) *MatchRepository {
	return &MatchRepository{db: db}
}

// Insert relies on the unique index over the unordered pair
// (least(user_id, matched_user_id), greatest(...)) to reject concurrent
// creates for the same two users.
func (r *MatchRepository) Insert(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (id, user_id, matched_user_id, status, match_percentage, common_interests)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		match.ID,
		match.UserID,
		match.MatchedUserID,
		match.Status,
		match.MatchPercentage,
		match.CommonInterests,
	).Scan(&match.CreatedAt, &match.UpdatedAt)
}

func (r *MatchRepository) ListByUser(ctx context.Context, userID string) ([]models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE user_id = $1 OR matched_user_id = $1
		ORDER BY updated_at DESC, id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *match)
	}
	return matches, rows.Err()
}

// FindPair looks the pair up in both directions; a record blocks re-creation
// regardless of which side initiated it.
func (r *MatchRepository) FindPair(ctx context.Context, userA, userB string) (*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE (user_id = $1 AND matched_user_id = $2)
		   OR (user_id = $2 AND matched_user_id = $1)
	`
	return scanMatch(r.db.QueryRow(ctx, query, userA, userB))
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.db.QueryRow(ctx, query, id))
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, id string, status models.MatchStatus) (*models.Match, error) {
	query := `
		UPDATE matches
		SET status = $2,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + matchColumns
	return scanMatch(r.db.QueryRow(ctx, query, id, status))
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	var match models.Match
	err := row.Scan(
		&match.ID,
		&match.UserID,
		&match.MatchedUserID,
		&match.Status,
		&match.MatchPercentage,
		&match.CommonInterests,
		&match.CreatedAt,
		&match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}
