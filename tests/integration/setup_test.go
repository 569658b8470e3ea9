package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"

	adaptershttp "github.com/okosach/bankd/internal/adapter/http"
	"github.com/okosach/bankd/internal/adapter/http/handler"
	postgresrepo "github.com/okosach/bankd/internal/adapter/repository/postgres"
	redisrepo "github.com/okosach/bankd/internal/adapter/repository/redis"
	"github.com/okosach/bankd/internal/domain"
	"github.com/okosach/bankd/internal/infrastructure/auth"
	infraredis "github.com/okosach/bankd/internal/infrastructure/redis"
	"github.com/okosach/bankd/internal/usecase"
	"github.com/okosach/bankd/tests/testutil"
)

// testEnv wires the full stack against real Postgres and Redis.
type testEnv struct {
	db          *testutil.TestDB
	router      http.Handler
	jwtManager  *auth.JWTManager
	accountRepo *postgresrepo.AccountRepository
	ledgerUC    *usecase.LedgerUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)
	testDB.TruncateAll(ctx)

	pool := testDB.Pool
	accountRepo := postgresrepo.NewAccountRepository(pool)
	txnRepo := postgresrepo.NewTransactionRepository(pool)
	userRepo := postgresrepo.NewUserRepository(pool)
	ledgerRepo := postgresrepo.NewLedgerRepository(pool)
	txManager := postgresrepo.NewTxManager(pool)
	idGen := postgresrepo.NewULIDGenerator()

	ownership := usecase.NewOwnershipValidator(accountRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo, ownership, idGen, nil)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, txnRepo, ownership, idGen, nil)
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	reconciliationUC := usecase.NewReconciliationUseCase(ledgerRepo)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	jwtManager := auth.NewJWTManager("integration-secret", time.Hour)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(ledgerUC, postgresrepo.NewRetrier(zerolog.Nop())),
		AuthHandler:        handler.NewAuthHandler(userUC, jwtManager),
		LedgerHandler:      handler.NewLedgerHandler(reconciliationUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		IdempotencyStore:   redisrepo.NewIdempotencyStore(redisClient),
		Logger:             zerolog.Nop(),
	})

	return &testEnv{
		db:          testDB,
		router:      router,
		jwtManager:  jwtManager,
		accountRepo: accountRepo,
		ledgerUC:    ledgerUC,
	}
}

func (env *testEnv) token(t *testing.T, user *domain.User) string {
	t.Helper()

	token, err := env.jwtManager.Generate(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// doJSON performs a request against the router. body may be nil.
func (env *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// doJSONWithHeader is doJSON plus one extra request header.
func (env *testEnv) doJSONWithHeader(t *testing.T, method, path, token string, body any, headerKey, headerValue string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerKey, headerValue)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}
