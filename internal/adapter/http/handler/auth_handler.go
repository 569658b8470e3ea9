package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okosach/bankd/internal/adapter/http/dto"
	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/infrastructure/auth"
	"github.com/okosach/bankd/internal/usecase"
)

type userService interface {
	CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	userUC     userService
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userUC userService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		userUC:     userUC,
		jwtManager: jwtManager,
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.CreateUser(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "registration failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// Login authenticates a user and returns a signed access token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "authentication failed", err.Error())
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &dto.TokenResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userUC.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
