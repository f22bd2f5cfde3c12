package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/saeid-a/FitBuddyBack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChallengeStore struct {
	challenges   map[string]*models.Challenge
	participants map[string]map[string]*models.ChallengeParticipant
}

func newStubChallengeStore() *stubChallengeStore {
	return &stubChallengeStore{
		challenges:   make(map[string]*models.Challenge),
		participants: make(map[string]map[string]*models.ChallengeParticipant),
	}
}

func (s *stubChallengeStore) Insert(_ context.Context, challenge *models.Challenge) error {
	clone := *challenge
	s.challenges[challenge.ID] = &clone
	return nil
}

func (s *stubChallengeStore) List(_ context.Context) ([]models.Challenge, error) {
	all := make([]models.Challenge, 0, len(s.challenges))
	for _, c := range s.challenges {
		all = append(all, *c)
	}
	return all, nil
}

func (s *stubChallengeStore) ListByParticipant(_ context.Context, userID string) ([]models.Challenge, error) {
	result := make([]models.Challenge, 0)
	for id, members := range s.participants {
		if _, ok := members[userID]; ok {
			result = append(result, *s.challenges[id])
		}
	}
	return result, nil
}

func (s *stubChallengeStore) GetByID(_ context.Context, id string) (*models.Challenge, error) {
	challenge, ok := s.challenges[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *challenge
	return &clone, nil
}

func (s *stubChallengeStore) Update(_ context.Context, id string, req repository.UpdateChallengeInput) (*models.Challenge, error) {
	challenge, ok := s.challenges[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if req.Title != nil {
		challenge.Title = *req.Title
	}
	if req.GoalTarget != nil {
		challenge.GoalTarget = *req.GoalTarget
	}
	clone := *challenge
	return &clone, nil
}

func (s *stubChallengeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.challenges[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.challenges, id)
	delete(s.participants, id)
	return nil
}

func (s *stubChallengeStore) AddParticipant(_ context.Context, challengeID, userID string) error {
	if s.participants[challengeID] == nil {
		s.participants[challengeID] = make(map[string]*models.ChallengeParticipant)
	}
	if _, ok := s.participants[challengeID][userID]; !ok {
		s.participants[challengeID][userID] = &models.ChallengeParticipant{
			ChallengeID: challengeID,
			UserID:      userID,
		}
	}
	return nil
}

func (s *stubChallengeStore) RemoveParticipant(_ context.Context, challengeID, userID string) error {
	delete(s.participants[challengeID], userID)
	return nil
}

func (s *stubChallengeStore) ListParticipants(_ context.Context, challengeID string) ([]models.ChallengeParticipant, error) {
	members := make([]models.ChallengeParticipant, 0)
	for _, p := range s.participants[challengeID] {
		members = append(members, *p)
	}
	return members, nil
}

func (s *stubChallengeStore) UpdateProgress(_ context.Context, challengeID, userID string, progress int, completed bool) (*models.ChallengeParticipant, error) {
	participant, ok := s.participants[challengeID][userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	participant.Progress = progress
	participant.Completed = completed
	clone := *participant
	return &clone, nil
}

type stubPointsDirectory struct {
	users []models.User
}

func (s *stubPointsDirectory) TopByPoints(_ context.Context, limit int) ([]models.User, error) {
	if len(s.users) > limit {
		return s.users[:limit], nil
	}
	return s.users, nil
}

func validChallengeInput() CreateChallengeInput {
	return CreateChallengeInput{
		Title:      "30 Day Running",
		Metric:     "distance",
		GoalTarget: 100,
		StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
	}
}

func newChallengeService(store challengeStore) *ChallengeService {
	service := NewChallengeService(store, &stubPointsDirectory{})
	service.now = func() time.Time {
		return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	}
	return service
}

func TestCreateChallengeJoinsCreator(t *testing.T) {
	store := newStubChallengeStore()
	service := newChallengeService(store)

	detail, err := service.CreateChallenge(context.Background(), "creator", validChallengeInput())
	require.NoError(t, err)

	assert.Equal(t, "creator", detail.CreatorID)
	assert.Equal(t, "active", detail.Status)
	require.Len(t, detail.Participants, 1)
	assert.Equal(t, "creator", detail.Participants[0].UserID)
}

func TestCreateChallengeValidation(t *testing.T) {
	service := newChallengeService(newStubChallengeStore())

	empty := validChallengeInput()
	empty.Title = "   "
	_, err := service.CreateChallenge(context.Background(), "creator", empty)
	assert.ErrorIs(t, err, ErrInvalidInput)

	noGoal := validChallengeInput()
	noGoal.GoalTarget = 0
	_, err = service.CreateChallenge(context.Background(), "creator", noGoal)
	assert.ErrorIs(t, err, ErrInvalidInput)

	backwards := validChallengeInput()
	backwards.StartDate, backwards.EndDate = backwards.EndDate, backwards.StartDate
	_, err = service.CreateChallenge(context.Background(), "creator", backwards)
	assert.ErrorIs(t, err, ErrInvalidInput)

	badMetric := validChallengeInput()
	badMetric.Metric = "vibes"
	_, err = service.CreateChallenge(context.Background(), "creator", badMetric)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateChallengeCreatorOnly(t *testing.T) {
	store := newStubChallengeStore()
	service := newChallengeService(store)

	detail, err := service.CreateChallenge(context.Background(), "creator", validChallengeInput())
	require.NoError(t, err)

	title := "Renamed"
	_, err = service.UpdateChallenge(context.Background(), "intruder", detail.ID, repository.UpdateChallengeInput{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := service.UpdateChallenge(context.Background(), "creator", detail.ID, repository.UpdateChallengeInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestDeleteChallengeCreatorOnly(t *testing.T) {
	store := newStubChallengeStore()
	service := newChallengeService(store)

	detail, err := service.CreateChallenge(context.Background(), "creator", validChallengeInput())
	require.NoError(t, err)

	assert.ErrorIs(t, service.DeleteChallenge(context.Background(), "intruder", detail.ID), ErrForbidden)
	require.NoError(t, service.DeleteChallenge(context.Background(), "creator", detail.ID))

	_, err = service.GetChallenge(context.Background(), detail.ID)
	assert.ErrorIs(t, err, ErrChallengeNotFound)
}

func TestUpdateProgressRequiresMembership(t *testing.T) {
	store := newStubChallengeStore()
	service := newChallengeService(store)

	detail, err := service.CreateChallenge(context.Background(), "creator", validChallengeInput())
	require.NoError(t, err)

	_, err = service.UpdateProgress(context.Background(), "outsider", detail.ID, 10)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestUpdateProgressCompletesAtGoal(t *testing.T) {
	store := newStubChallengeStore()
	service := newChallengeService(store)

	detail, err := service.CreateChallenge(context.Background(), "creator", validChallengeInput())
	require.NoError(t, err)

	_, err = service.UpdateProgress(context.Background(), "creator", detail.ID, 99)
	require.NoError(t, err)
	assert.False(t, store.participants[detail.ID]["creator"].Completed)

	_, err = service.UpdateProgress(context.Background(), "creator", detail.ID, 100)
	require.NoError(t, err)
	assert.True(t, store.participants[detail.ID]["creator"].Completed)
}

func TestChallengeLeaderboardCapsXP(t *testing.T) {
	store := newStubChallengeStore()
	service := newChallengeService(store)

	input := validChallengeInput()
	input.XPReward = 100
	input.XPPerProgress = 10
	detail, err := service.CreateChallenge(context.Background(), "creator", input)
	require.NoError(t, err)

	_, err = service.UpdateProgress(context.Background(), "creator", detail.ID, 50)
	require.NoError(t, err)

	refreshed, err := service.GetChallenge(context.Background(), detail.ID)
	require.NoError(t, err)

	require.Len(t, refreshed.Leaderboard, 1)
	// 50 * 10 would be 500; the reward caps it.
	assert.Equal(t, 100, refreshed.Leaderboard[0].XPEarned)
}

func TestGlobalLeaderboardRanksByPoints(t *testing.T) {
	service := NewChallengeService(newStubChallengeStore(), &stubPointsDirectory{users: []models.User{
		{ID: "gold", Username: "gold", Points: 300},
		{ID: "silver", Username: "silver", Points: 200},
		{ID: "bronze", Username: "bronze", Points: 100},
	}})

	entries, err := service.GlobalLeaderboard(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "gold", entries[0].User.ID)
	assert.Equal(t, 300, entries[0].Points)
	assert.Equal(t, 3, entries[2].Rank)
}
