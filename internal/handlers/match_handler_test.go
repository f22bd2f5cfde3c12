package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/saeid-a/FitBuddyBack/internal/services"
)

type stubMatchService struct {
	createErr error
	updateErr error
	match     *models.Match
	potential []models.PotentialMatch
}

func (s *stubMatchService) Score(_ context.Context, _, _ string) (int, []string, error) {
	return 85, []string{"running", "yoga"}, nil
}

func (s *stubMatchService) ListMatches(_ context.Context, _ string) ([]models.MatchDetail, error) {
	if s.match == nil {
		return []models.MatchDetail{}, nil
	}
	return []models.MatchDetail{{Match: *s.match}}, nil
}

func (s *stubMatchService) ListPotentialMatches(_ context.Context, _ string) ([]models.PotentialMatch, error) {
	return s.potential, nil
}

func (s *stubMatchService) CreateMatch(_ context.Context, initiatorID, recipientID string) (*models.Match, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Match{
		ID:              "m1",
		UserID:          initiatorID,
		MatchedUserID:   recipientID,
		Status:          models.MatchPending,
		MatchPercentage: 85,
	}, nil
}

func (s *stubMatchService) UpdateStatus(_ context.Context, _, _ string, next models.MatchStatus) (*models.Match, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	match := *s.match
	match.Status = next
	return &match, nil
}

func newMatchTestApp(service *stubMatchService, userID string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})

	handler := NewMatchHandler(service)
	app.Get("/matches", handler.ListMatches)
	app.Post("/matches", handler.CreateMatch)
	app.Get("/matches/potential", handler.ListPotentialMatches)
	app.Get("/matches/score/:userId", handler.GetScore)
	app.Put("/matches/:id/status", handler.UpdateStatus)
	app.Post("/matches/:id/accept", handler.Accept)
	app.Post("/matches/:id/decline", handler.Decline)
	return app
}

func TestCreateMatchReturnsCreated(t *testing.T) {
	app := newMatchTestApp(&stubMatchService{}, "a")

	body, _ := json.Marshal(map[string]string{"matched_user_id": "b"})
	req := httptest.NewRequest(http.MethodPost, "/matches", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}

	var payload struct {
		Match models.Match `json:"match"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Match.Status != models.MatchPending {
		t.Fatalf("expected pending match, got %q", payload.Match.Status)
	}
	if payload.Match.UserID != "a" || payload.Match.MatchedUserID != "b" {
		t.Fatalf("unexpected pair %q -> %q", payload.Match.UserID, payload.Match.MatchedUserID)
	}
}

func TestCreateMatchDuplicateConflict(t *testing.T) {
	app := newMatchTestApp(&stubMatchService{createErr: services.ErrDuplicateMatch}, "a")

	body, _ := json.Marshal(map[string]string{"matched_user_id": "b"})
	req := httptest.NewRequest(http.MethodPost, "/matches", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.StatusCode)
	}
}

func TestAcceptIllegalTransitionConflict(t *testing.T) {
	service := &stubMatchService{
		match: &models.Match{ID: "m1", UserID: "a", MatchedUserID: "b", Status: models.MatchDeclined},
		updateErr: &services.IllegalTransitionError{
			From: models.MatchDeclined,
			To:   models.MatchAccepted,
		},
	}
	app := newMatchTestApp(service, "b")

	req := httptest.NewRequest(http.MethodPost, "/matches/m1/accept", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.StatusCode)
	}

	var payload struct {
		Error string `json:"error"`
		From  string `json:"from"`
		To    string `json:"to"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.From != "declined" || payload.To != "accepted" {
		t.Fatalf("expected transition declined -> accepted in body, got %q -> %q", payload.From, payload.To)
	}
}

func TestAcceptMissingMatchNotFound(t *testing.T) {
	app := newMatchTestApp(&stubMatchService{updateErr: services.ErrMatchNotFound}, "b")

	req := httptest.NewRequest(http.MethodPost, "/matches/ghost/accept", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.StatusCode)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	app := newMatchTestApp(&stubMatchService{}, "a")

	body, _ := json.Marshal(map[string]string{"status": "blocked"})
	req := httptest.NewRequest(http.MethodPut, "/matches/m1/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestGetScoreReturnsBreakdown(t *testing.T) {
	app := newMatchTestApp(&stubMatchService{}, "a")

	req := httptest.NewRequest(http.MethodGet, "/matches/score/b", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var payload struct {
		MatchPercentage int      `json:"match_percentage"`
		CommonInterests []string `json:"common_interests"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.MatchPercentage != 85 {
		t.Fatalf("expected score 85, got %d", payload.MatchPercentage)
	}
	if len(payload.CommonInterests) != 2 {
		t.Fatalf("expected 2 common interests, got %d", len(payload.CommonInterests))
	}
}

func TestListPotentialMatches(t *testing.T) {
	service := &stubMatchService{potential: []models.PotentialMatch{
		{User: models.User{ID: "c"}, MatchPercentage: 90},
		{User: models.User{ID: "d"}, MatchPercentage: 75},
	}}
	app := newMatchTestApp(service, "a")

	req := httptest.NewRequest(http.MethodGet, "/matches/potential", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var payload struct {
		PotentialMatches []models.PotentialMatch `json:"potential_matches"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.PotentialMatches) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(payload.PotentialMatches))
	}
	if payload.PotentialMatches[0].User.ID != "c" {
		t.Fatalf("expected best candidate first, got %q", payload.PotentialMatches[0].User.ID)
	}
}

func TestMatchRoutesRequireIdentity(t *testing.T) {
	app := newMatchTestApp(&stubMatchService{}, "")

	req := httptest.NewRequest(http.MethodGet, "/matches", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
}
