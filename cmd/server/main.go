package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/okosach/bankd/internal/adapter/http"
	"github.com/okosach/bankd/internal/adapter/http/handler"
	"github.com/okosach/bankd/internal/adapter/http/middleware"
	postgresRepo "github.com/okosach/bankd/internal/adapter/repository/postgres"
	redisRepo "github.com/okosach/bankd/internal/adapter/repository/redis"
	"github.com/okosach/bankd/internal/infrastructure/auth"
	"github.com/okosach/bankd/internal/infrastructure/config"
	"github.com/okosach/bankd/internal/infrastructure/logger"
	"github.com/okosach/bankd/internal/infrastructure/metrics"
	"github.com/okosach/bankd/internal/infrastructure/postgres"
	"github.com/okosach/bankd/internal/infrastructure/redis"
	"github.com/okosach/bankd/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "bankd",
	})
	log.Logger = appLogger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Use cases
	ownership := usecase.NewOwnershipValidator(accountRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo, ownership, idGen, m)
	ledgerUC := usecase.NewLedgerUseCase(txManager, accountRepo, txnRepo, ownership, idGen, m)
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	reconciliationUC := usecase.NewReconciliationUseCase(ledgerRepo)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(accountUC),
		TransactionHandler: handler.NewTransactionHandler(ledgerUC, retrier),
		AuthHandler:        handler.NewAuthHandler(userUC, jwtManager),
		LedgerHandler:      handler.NewLedgerHandler(reconciliationUC),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		Metrics:            m,
		RateLimiter:        middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m),
		Logger:             appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
