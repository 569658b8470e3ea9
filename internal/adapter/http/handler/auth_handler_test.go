package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okosach/bankd/internal/adapter/http/dto"
	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/infrastructure/auth"
	"github.com/okosach/bankd/internal/usecase"
)

type userServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	authFn   func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
}

func (s *userServiceStub) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, input)
}

func (s *userServiceStub) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return s.authFn(ctx, input)
}

func (s *userServiceStub) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func newTestAuthHandler(stub *userServiceStub) *AuthHandler {
	return NewAuthHandler(stub, auth.NewJWTManager("test-secret", time.Hour))
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler := newTestAuthHandler(&userServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: input.Email, Name: input.Name}, nil
		},
	})

	body, _ := json.Marshal(dto.RegisterRequest{
		Email:    "new@example.com",
		Name:     "New User",
		Password: "Sup3rSecret",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Email != "new@example.com" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler := newTestAuthHandler(&userServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrEmailAlreadyExists
		},
	})

	body, _ := json.Marshal(dto.RegisterRequest{Email: "dup@example.com", Name: "Dup", Password: "Sup3rSecret"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler := newTestAuthHandler(&userServiceStub{
		authFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			return &domain.User{ID: "user-1", Email: input.Email}, nil
		},
	})

	body, _ := json.Marshal(dto.LoginRequest{Email: "owner@example.com", Password: "Sup3rSecret"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}

	claims, err := auth.NewJWTManager("test-secret", time.Hour).Verify(resp.Token)
	if err != nil {
		t.Fatalf("expected issued token to verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Fatalf("expected token for user-1, got %s", claims.UserID)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	handler := newTestAuthHandler(&userServiceStub{
		authFn: func(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
			return nil, domain.ErrUnauthorized
		},
	})

	body, _ := json.Marshal(dto.LoginRequest{Email: "owner@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler := newTestAuthHandler(&userServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: "owner@example.com"}, nil
		},
	})

	req := authedRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()

	handler.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "user-1" {
		t.Fatalf("expected user-1, got %+v", resp)
	}
}
