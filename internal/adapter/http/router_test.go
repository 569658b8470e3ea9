package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/okosach/bankd/internal/adapter/http/dto"
	"github.com/okosach/bankd/internal/adapter/http/handler"
	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/infrastructure/auth"
	"github.com/okosach/bankd/internal/usecase"
)

type routerLedgerStub struct {
	depositFn func(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
	listFn    func(ctx context.Context, input usecase.GetTransactionsInput) ([]*domain.Transaction, error)
}

func (s *routerLedgerStub) Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error) {
	return s.depositFn(ctx, input)
}

func (s *routerLedgerStub) Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error) {
	return nil, domain.ErrTransactionNotFound
}

func (s *routerLedgerStub) Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error) {
	return nil, domain.ErrTransactionNotFound
}

func (s *routerLedgerStub) GetTransactions(ctx context.Context, input usecase.GetTransactionsInput) ([]*domain.Transaction, error) {
	return s.listFn(ctx, input)
}

func (s *routerLedgerStub) GetTransactionByReference(ctx context.Context, reference, userID string) (*domain.Transaction, error) {
	return nil, domain.ErrTransactionNotFound
}

type routerUserStub struct{}

func (s *routerUserStub) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error) {
	return &domain.User{ID: "user-1", Email: input.Email, Name: input.Name}, nil
}

func (s *routerUserStub) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error) {
	return &domain.User{ID: "user-1", Email: input.Email}, nil
}

func (s *routerUserStub) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

type routerConsistencyStub struct{}

func (s *routerConsistencyStub) CheckConsistency(ctx context.Context) (bool, error) {
	return true, nil
}

func newTestRouter(t *testing.T, ledger *routerLedgerStub) (http.Handler, *auth.JWTManager) {
	t.Helper()

	jwtManager := auth.NewJWTManager("router-secret", time.Hour)

	return NewRouter(RouterConfig{
		AccountHandler:     handler.NewAccountHandler(nil),
		TransactionHandler: handler.NewTransactionHandler(ledger, nil),
		AuthHandler:        handler.NewAuthHandler(&routerUserStub{}, jwtManager),
		LedgerHandler:      handler.NewLedgerHandler(&routerConsistencyStub{}),
		HealthHandler:      handler.NewHealthHandler(nil, nil),
		JWTManager:         jwtManager,
		Logger:             zerolog.Nop(),
	}), jwtManager
}

func TestRouterHealthIsPublic(t *testing.T) {
	router, _ := newTestRouter(t, &routerLedgerStub{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterRegisterIsPublic(t *testing.T) {
	router, _ := newTestRouter(t, &routerLedgerStub{})

	body, _ := json.Marshal(dto.RegisterRequest{Email: "new@example.com", Name: "New", Password: "Sup3rSecret"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterDepositRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t, &routerLedgerStub{
		depositFn: func(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error) {
			t.Fatal("unauthenticated request must not reach the handler")
			return nil, nil
		},
	})

	body, _ := json.Marshal(dto.MoneyRequest{Amount: decimal.NewFromInt(10)})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/deposit/acc-1", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouterDepositFlowsURLParamsAndUser(t *testing.T) {
	var captured usecase.DepositInput
	router, jwtManager := newTestRouter(t, &routerLedgerStub{
		depositFn: func(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error) {
			captured = input
			return &domain.Transaction{
				ID:     "txn-1",
				Type:   domain.TransactionTypeDeposit,
				Amount: input.Amount,
				Status: domain.TransactionStatusCompleted,
			}, nil
		},
	})

	token, err := jwtManager.Generate(&domain.User{ID: "user-1", Email: "owner@example.com"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	body, _ := json.Marshal(dto.MoneyRequest{Amount: decimal.NewFromInt(42)})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/deposit/acc-1", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.AccountID != "acc-1" || captured.UserID != "user-1" {
		t.Fatalf("expected account from URL and user from token, got %+v", captured)
	}
}

func TestRouterTransactionHistoryRoute(t *testing.T) {
	router, jwtManager := newTestRouter(t, &routerLedgerStub{
		listFn: func(ctx context.Context, input usecase.GetTransactionsInput) ([]*domain.Transaction, error) {
			if input.AccountID != "acc-1" {
				t.Fatalf("expected account from URL, got %+v", input)
			}
			return []*domain.Transaction{{ID: "txn-1"}}, nil
		},
	})

	token, err := jwtManager.Generate(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/acc-1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterConsistencyRoute(t *testing.T) {
	router, jwtManager := newTestRouter(t, &routerLedgerStub{})

	token, err := jwtManager.Generate(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/consistency", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ConsistencyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Consistent {
		t.Fatalf("unexpected response %+v", resp)
	}
}
