package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saeid-a/FitBuddyBack/internal/models"
)

type userDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListAll(ctx context.Context) ([]models.User, error)
}

type matchStore interface {
	Insert(ctx context.Context, match *models.Match) error
	ListByUser(ctx context.Context, userID string) ([]models.Match, error)
	FindPair(ctx context.Context, userA, userB string) (*models.Match, error)
	GetByID(ctx context.Context, id string) (*models.Match, error)
	UpdateStatus(ctx context.Context, id string, status models.MatchStatus) (*models.Match, error)
}

type MatchService struct {
	users   userDirectory
	matches matchStore
}

func NewMatchService(users userDirectory, matches matchStore) *MatchService {
	return &MatchService{users: users, matches: matches}
}

// Score computes the compatibility between two users without creating a
// match record.
func (s *MatchService) Score(ctx context.Context, userID, otherID string) (int, []string, error) {
	if userID == "" || otherID == "" || userID == otherID {
		return 0, nil, ErrInvalidInput
	}

	a, err := s.lookupUser(ctx, userID)
	if err != nil {
		return 0, nil, err
	}
	b, err := s.lookupUser(ctx, otherID)
	if err != nil {
		return 0, nil, err
	}

	score, common := CompatibilityScore(a, b)
	return score, common, nil
}

func (s *MatchService) ListMatches(ctx context.Context, userID string) ([]models.MatchDetail, error) {
	matches, err := s.matches.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make(map[string]*models.UserSummary)
	details := make([]models.MatchDetail, 0, len(matches))
	for _, match := range matches {
		detail := models.MatchDetail{Match: match}
		detail.User = s.summaryFor(ctx, summaries, match.UserID)
		detail.MatchedUser = s.summaryFor(ctx, summaries, match.MatchedUserID)
		details = append(details, detail)
	}
	return details, nil
}

// ListPotentialMatches returns every user the given user has no match record
// with, in any status: a declined pair stays off the list for good. Results
// are scored and sorted best first.
func (s *MatchService) ListPotentialMatches(ctx context.Context, userID string) ([]models.PotentialMatch, error) {
	self, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches, err := s.matches.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	paired := make(map[string]struct{}, len(matches)+1)
	paired[userID] = struct{}{}
	for _, match := range matches {
		paired[match.OtherUserID(userID)] = struct{}{}
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.PotentialMatch, 0, len(users))
	for _, candidate := range users {
		if _, excluded := paired[candidate.ID]; excluded {
			continue
		}
		score, common := CompatibilityScore(self, &candidate)
		candidates = append(candidates, models.PotentialMatch{
			User:            candidate,
			MatchPercentage: score,
			CommonInterests: common,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].MatchPercentage == candidates[j].MatchPercentage {
			return candidates[i].User.ID < candidates[j].User.ID
		}
		return candidates[i].MatchPercentage > candidates[j].MatchPercentage
	})

	return candidates, nil
}

// CreateMatch scores the pair once and stores a pending match. A record in
// any status, in either direction, blocks creation.
func (s *MatchService) CreateMatch(ctx context.Context, initiatorID, recipientID string) (*models.Match, error) {
	if initiatorID == "" || recipientID == "" || initiatorID == recipientID {
		return nil, ErrInvalidInput
	}

	initiator, err := s.lookupUser(ctx, initiatorID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.lookupUser(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	existing, err := s.matches.FindPair(ctx, initiatorID, recipientID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateMatch
	}

	score, common := CompatibilityScore(initiator, recipient)
	if common == nil {
		// a nil slice binds as SQL NULL; the column is NOT NULL
		common = []string{}
	}
	now := time.Now().UTC()
	match := &models.Match{
		ID:              uuid.NewString(),
		UserID:          initiatorID,
		MatchedUserID:   recipientID,
		Status:          models.MatchPending,
		MatchPercentage: score,
		CommonInterests: common,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.matches.Insert(ctx, match); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateMatch
		}
		return nil, err
	}

	return match, nil
}

func (s *MatchService) UpdateStatus(
	ctx context.Context,
	actorID string,
	matchID string,
	next models.MatchStatus,
) (*models.Match, error) {
	if !models.IsValidMatchStatus(next) {
		return nil, ErrInvalidInput
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if err := CanTransition(match, actorID, next); err != nil {
		return nil, err
	}

	return s.matches.UpdateStatus(ctx, matchID, next)
}

func (s *MatchService) lookupUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *MatchService) summaryFor(
	ctx context.Context,
	cache map[string]*models.UserSummary,
	userID string,
) *models.UserSummary {
	if summary, ok := cache[userID]; ok {
		return summary
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		cache[userID] = nil
		return nil
	}
	summary := user.Summary()
	cache[userID] = &summary
	return &summary
}
