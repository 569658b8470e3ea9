package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okosach/bankd/internal/adapter/http/dto"
	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/usecase"
)

// accountService is the slice of the account use case the handler needs.
type accountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, accountID, userID string) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, number, userID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]*domain.Account, error)
	SuspendAccount(ctx context.Context, accountID, userID string) error
	ActivateAccount(ctx context.Context, accountID, userID string) error
	GetAccountStatus(ctx context.Context, accountID, userID string) (domain.AccountStatus, error)
	DeleteAccount(ctx context.Context, accountID, userID string) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC accountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC accountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create opens a new account for the authenticated user.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create account", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account owned by the authenticated user.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetByNumber resolves an account by its human-readable number.
func (h *AccountHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	account, err := h.accountUC.GetAccountByNumber(r.Context(), chi.URLParam(r, "number"), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists the authenticated user's accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Delete removes a drained account owned by the authenticated user.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := h.accountUC.DeleteAccount(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		writeError(w, mapDomainError(err), "failed to delete account", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Suspend suspends an account, blocking it from transacting.
func (h *AccountHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.accountUC.SuspendAccount)
}

// Activate reactivates a suspended account.
func (h *AccountHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, h.accountUC.ActivateAccount)
}

// GetStatus returns the status of an account.
func (h *AccountHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	status, err := h.accountUC.GetAccountStatus(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}

func (h *AccountHandler) setStatus(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, accountID, userID string) error) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	accountID := chi.URLParam(r, "id")
	if err := op(r.Context(), accountID, userID); err != nil {
		writeError(w, mapDomainError(err), "failed to change account status", err.Error())
		return
	}

	status, err := h.accountUC.GetAccountStatus(r.Context(), accountID, userID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(status)})
}
