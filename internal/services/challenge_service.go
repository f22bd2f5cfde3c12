package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/saeid-a/FitBuddyBack/internal/repository"
)

const globalLeaderboardLimit = 50

var challengeMetrics = map[string]struct{}{
	"workouts": {},
	"steps":    {},
	"distance": {},
	"calories": {},
	"liters":   {},
	"servings": {},
	"flights":  {},
}

type challengeStore interface {
	Insert(ctx context.Context, challenge *models.Challenge) error
	List(ctx context.Context) ([]models.Challenge, error)
	ListByParticipant(ctx context.Context, userID string) ([]models.Challenge, error)
	GetByID(ctx context.Context, id string) (*models.Challenge, error)
	Update(ctx context.Context, id string, req repository.UpdateChallengeInput) (*models.Challenge, error)
	Delete(ctx context.Context, id string) error
	AddParticipant(ctx context.Context, challengeID, userID string) error
	RemoveParticipant(ctx context.Context, challengeID, userID string) error
	ListParticipants(ctx context.Context, challengeID string) ([]models.ChallengeParticipant, error)
	UpdateProgress(ctx context.Context, challengeID, userID string, progress int, completed bool) (*models.ChallengeParticipant, error)
}

type challengeUserDirectory interface {
	TopByPoints(ctx context.Context, limit int) ([]models.User, error)
}

type ChallengeService struct {
	challenges challengeStore
	users      challengeUserDirectory
	now        func() time.Time
}

func NewChallengeService(challenges challengeStore, users challengeUserDirectory) *ChallengeService {
	return &ChallengeService{
		challenges: challenges,
		users:      users,
		now:        time.Now,
	}
}

type CreateChallengeInput struct {
	Title         string
	Description   string
	Image         *string
	Type          string
	Metric        string
	GoalTarget    int
	GoalUnit      string
	Reward        string
	XPReward      int
	XPPerProgress int
	StartDate     time.Time
	EndDate       time.Time
}

// CreateChallenge stores the challenge and joins the creator to it.
func (s *ChallengeService) CreateChallenge(
	ctx context.Context,
	creatorID string,
	input CreateChallengeInput,
) (*models.ChallengeDetail, error) {
	if strings.TrimSpace(input.Title) == "" || input.GoalTarget <= 0 {
		return nil, ErrInvalidInput
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrInvalidInput
	}
	if _, ok := challengeMetrics[input.Metric]; input.Metric != "" && !ok {
		return nil, ErrInvalidInput
	}

	challenge := &models.Challenge{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		Image:         input.Image,
		Type:          defaultString(input.Type, "Workout"),
		Metric:        defaultString(input.Metric, "workouts"),
		GoalTarget:    input.GoalTarget,
		GoalUnit:      defaultString(input.GoalUnit, "workouts"),
		Reward:        defaultString(input.Reward, "100 points"),
		XPReward:      defaultInt(input.XPReward, 100),
		XPPerProgress: defaultInt(input.XPPerProgress, 10),
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		CreatorID:     creatorID,
	}

	if err := s.challenges.Insert(ctx, challenge); err != nil {
		return nil, err
	}
	if err := s.challenges.AddParticipant(ctx, challenge.ID, creatorID); err != nil {
		return nil, err
	}

	return s.detail(ctx, challenge)
}

func (s *ChallengeService) ListChallenges(ctx context.Context) ([]models.ChallengeDetail, error) {
	challenges, err := s.challenges.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, challenges)
}

func (s *ChallengeService) ListUserChallenges(ctx context.Context, userID string) ([]models.ChallengeDetail, error) {
	challenges, err := s.challenges.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, challenges)
}

func (s *ChallengeService) GetChallenge(ctx context.Context, id string) (*models.ChallengeDetail, error) {
	challenge, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, challenge)
}

func (s *ChallengeService) UpdateChallenge(
	ctx context.Context,
	actorID string,
	id string,
	input repository.UpdateChallengeInput,
) (*models.ChallengeDetail, error) {
	challenge, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if challenge.CreatorID != actorID {
		return nil, ErrForbidden
	}

	updated, err := s.challenges.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, updated)
}

func (s *ChallengeService) DeleteChallenge(ctx context.Context, actorID, id string) error {
	challenge, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}
	if challenge.CreatorID != actorID {
		return ErrForbidden
	}
	return s.challenges.Delete(ctx, id)
}

func (s *ChallengeService) JoinChallenge(ctx context.Context, userID, id string) (*models.ChallengeDetail, error) {
	challenge, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.challenges.AddParticipant(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.detail(ctx, challenge)
}

func (s *ChallengeService) LeaveChallenge(ctx context.Context, userID, id string) (*models.ChallengeDetail, error) {
	challenge, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.challenges.RemoveParticipant(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.detail(ctx, challenge)
}

// UpdateProgress records absolute progress for a participant and recomputes
// completion against the goal target.
func (s *ChallengeService) UpdateProgress(
	ctx context.Context,
	userID string,
	id string,
	progress int,
) (*models.ChallengeDetail, error) {
	if progress < 0 {
		return nil, ErrInvalidInput
	}

	challenge, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	completed := progress >= challenge.GoalTarget
	if _, err := s.challenges.UpdateProgress(ctx, id, userID, progress, completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotParticipant
		}
		return nil, err
	}

	return s.detail(ctx, challenge)
}

// GlobalLeaderboard ranks users by accumulated points.
func (s *ChallengeService) GlobalLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	users, err := s.users.TopByPoints(ctx, globalLeaderboardLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, models.LeaderboardEntry{
			User:   user.Summary(),
			Points: user.Points,
			Rank:   i + 1,
		})
	}
	return entries, nil
}

func (s *ChallengeService) lookup(ctx context.Context, id string) (*models.Challenge, error) {
	challenge, err := s.challenges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) details(ctx context.Context, challenges []models.Challenge) ([]models.ChallengeDetail, error) {
	details := make([]models.ChallengeDetail, 0, len(challenges))
	for i := range challenges {
		detail, err := s.detail(ctx, &challenges[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *ChallengeService) detail(ctx context.Context, challenge *models.Challenge) (*models.ChallengeDetail, error) {
	participants, err := s.challenges.ListParticipants(ctx, challenge.ID)
	if err != nil {
		return nil, err
	}

	leaderboard := make([]models.ChallengeLeaderboardRow, 0, len(participants))
	for _, p := range participants {
		xp := p.Progress * challenge.XPPerProgress
		if xp > challenge.XPReward {
			xp = challenge.XPReward
		}
		leaderboard = append(leaderboard, models.ChallengeLeaderboardRow{
			UserID:   p.UserID,
			Progress: p.Progress,
			XPEarned: xp,
		})
	}

	return &models.ChallengeDetail{
		Challenge:    *challenge,
		Status:       challenge.Status(s.now()),
		Participants: participants,
		Leaderboard:  leaderboard,
	}, nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func defaultInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
