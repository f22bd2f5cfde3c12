package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/FitBuddyBack/internal/models"
	"github.com/saeid-a/FitBuddyBack/pkg/utils"
)

type stubUserAccountStore struct {
	byEmail map[string]*models.User
	created *models.User
}

func (s *stubUserAccountStore) Create(_ context.Context, user *models.User) error {
	s.created = user
	return nil
}

func (s *stubUserAccountStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *stubUserAccountStore) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newAuthTestApp(store *stubUserAccountStore) *fiber.App {
	app := fiber.New()
	handler := NewAuthHandler(store, "test-secret")
	app.Post("/register", handler.Register)
	app.Post("/login", handler.Login)
	return app
}

func registerBody(overrides map[string]any) []byte {
	payload := map[string]any{
		"name":     "Sam Runner",
		"username": "samrunner",
		"email":    "sam@example.com",
		"password": "secret123",
	}
	for key, value := range overrides {
		payload[key] = value
	}
	body, _ := json.Marshal(payload)
	return body
}

func TestRegisterWithoutFitnessLevel(t *testing.T) {
	store := &stubUserAccountStore{byEmail: map[string]*models.User{}}
	app := newAuthTestApp(store)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(registerBody(nil)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}
	if store.created == nil {
		t.Fatal("expected user to be created")
	}
	if store.created.FitnessLevel != nil {
		t.Fatalf("expected no fitness level, got %q", *store.created.FitnessLevel)
	}
	if store.created.PreferredExercises == nil || store.created.PreferredTime == nil {
		t.Fatal("expected array fields to be normalized to empty slices")
	}

	var payload struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Token == "" {
		t.Fatal("expected a token in the response")
	}
	claims, err := utils.ValidateToken(payload.Token, "test-secret")
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if claims.UserID != store.created.ID {
		t.Fatalf("token subject %q does not match created user %q", claims.UserID, store.created.ID)
	}
}

func TestRegisterRejectsInvalidFitnessLevel(t *testing.T) {
	app := newAuthTestApp(&stubUserAccountStore{byEmail: map[string]*models.User{}})

	body := registerBody(map[string]any{"fitness_level": "ultra"})
	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
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

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	store := &stubUserAccountStore{byEmail: map[string]*models.User{
		"sam@example.com": {ID: "u1", Email: "sam@example.com"},
	}}
	app := newAuthTestApp(store)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(registerBody(nil)))
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

func TestLoginWrongPassword(t *testing.T) {
	hashed, err := utils.HashPassword("rightpass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	store := &stubUserAccountStore{byEmail: map[string]*models.User{
		"sam@example.com": {ID: "u1", Email: "sam@example.com", PasswordHash: hashed},
	}}
	app := newAuthTestApp(store)

	body, _ := json.Marshal(map[string]string{
		"email":    "sam@example.com",
		"password": "wrongpass",
	})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.StatusCode)
	}
}
