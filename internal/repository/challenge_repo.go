package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/models"
)

const challengeColumns = `id, title, description, image, type, metric, goal_target, goal_unit,
	   reward, xp_reward, xp_per_progress, start_date, end_date, creator_id, created_at, updated_at`

type ChallengeRepository struct {
	db DBTX
}

func NewChallengeRepository(db DBTX) *ChallengeRepository {
	return &ChallengeRepository{db: db}
}

func (r *ChallengeRepository) Insert(ctx context.Context, challenge *models.Challenge) error {
	query := `
		INSERT INTO challenges (id, title, description, image, type, metric, goal_target, goal_unit,
								reward, xp_reward, xp_per_progress, start_date, end_date, creator_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		challenge.ID,
		challenge.Title,
		challenge.Description,
		challenge.Image,
		challenge.Type,
		challenge.Metric,
		challenge.GoalTarget,
		challenge.GoalUnit,
		challenge.Reward,
		challenge.XPReward,
		challenge.XPPerProgress,
		challenge.StartDate,
		challenge.EndDate,
		challenge.CreatorID,
	).Scan(&challenge.CreatedAt, &challenge.UpdatedAt)
}

func (r *ChallengeRepository) List(ctx context.Context) ([]models.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges ORDER BY start_date DESC, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectChallenges(rows)
}

func (r *ChallengeRepository) ListByParticipant(ctx context.Context, userID string) ([]models.Challenge, error) {
	query := `
		SELECT ` + challengeColumns + `
		FROM challenges
		WHERE id IN (SELECT challenge_id FROM challenge_participants WHERE user_id = $1)
		ORDER BY start_date DESC, id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectChallenges(rows)
}

func (r *ChallengeRepository) GetByID(ctx context.Context, id string) (*models.Challenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM challenges WHERE id = $1`
	return scanChallenge(r.db.QueryRow(ctx, query, id))
}

func (r *ChallengeRepository) Update(ctx context.Context, id string, req UpdateChallengeInput) (*models.Challenge, error) {
	query := `
		UPDATE challenges
		SET title = COALESCE($1, title),
			description = COALESCE($2, description),
			image = COALESCE($3, image),
			type = COALESCE($4, type),
			metric = COALESCE($5, metric),
			goal_target = COALESCE($6, goal_target),
			goal_unit = COALESCE($7, goal_unit),
			reward = COALESCE($8, reward),
			xp_reward = COALESCE($9, xp_reward),
			xp_per_progress = COALESCE($10, xp_per_progress),
			start_date = COALESCE($11, start_date),
			end_date = COALESCE($12, end_date),
			updated_at = NOW()
		WHERE id = $13
		RETURNING ` + challengeColumns
	return scanChallenge(r.db.QueryRow(ctx, query,
		req.Title,
		req.Description,
		req.Image,
		req.Type,
		req.Metric,
		req.GoalTarget,
		req.GoalUnit,
		req.Reward,
		req.XPReward,
		req.XPPerProgress,
		req.StartDate,
		req.EndDate,
		id,
	))
}

func (r *ChallengeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM challenges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddParticipant is idempotent; joining twice is a no-op.
func (r *ChallengeRepository) AddParticipant(ctx context.Context, challengeID, userID string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO challenge_participants (challenge_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (challenge_id, user_id) DO NOTHING
	`, challengeID, userID)
	return err
}

func (r *ChallengeRepository) RemoveParticipant(ctx context.Context, challengeID, userID string) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM challenge_participants
		WHERE challenge_id = $1 AND user_id = $2
	`, challengeID, userID)
	return err
}

func (r *ChallengeRepository) ListParticipants(ctx context.Context, challengeID string) ([]models.ChallengeParticipant, error) {
	query := `
		SELECT challenge_id, user_id, progress, completed, joined_at
		FROM challenge_participants
		WHERE challenge_id = $1
		ORDER BY progress DESC, user_id
	`
	rows, err := r.db.Query(ctx, query, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]models.ChallengeParticipant, 0)
	for rows.Next() {
		var p models.ChallengeParticipant
		if err := rows.Scan(&p.ChallengeID, &p.UserID, &p.Progress, &p.Completed, &p.JoinedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// UpdateProgress returns pgx.ErrNoRows when the user never joined.
func (r *ChallengeRepository) UpdateProgress(
	ctx context.Context,
	challengeID string,
	userID string,
	progress int,
	completed bool,
) (*models.ChallengeParticipant, error) {
	query := `
		UPDATE challenge_participants
		SET progress = $3,
			completed = $4
		WHERE challenge_id = $1 AND user_id = $2
		RETURNING challenge_id, user_id, progress, completed, joined_at
	`
	var p models.ChallengeParticipant
	err := r.db.QueryRow(ctx, query, challengeID, userID, progress, completed).
		Scan(&p.ChallengeID, &p.UserID, &p.Progress, &p.Completed, &p.JoinedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type UpdateChallengeInput struct {
	Title         *string
	Description   *string
	Image         *string
	Type          *string
	Metric        *string
	GoalTarget    *int
	GoalUnit      *string
	Reward        *string
	XPReward      *int
	XPPerProgress *int
	StartDate     *time.Time
	EndDate       *time.Time
}

func collectChallenges(rows pgx.Rows) ([]models.Challenge, error) {
	challenges := make([]models.Challenge, 0)
	for rows.Next() {
		challenge, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *challenge)
	}
	return challenges, rows.Err()
}

func scanChallenge(row pgx.Row) (*models.Challenge, error) {
	var c models.Challenge
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Image,
		&c.Type,
		&c.Metric,
		&c.GoalTarget,
		&c.GoalUnit,
		&c.Reward,
		&c.XPReward,
		&c.XPPerProgress,
		&c.StartDate,
		&c.EndDate,
		&c.CreatorID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
