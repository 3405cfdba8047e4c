package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brokerwallet/config"
	httpHandler "brokerwallet/internal/adapter/http/handler"
	pgStorage "brokerwallet/internal/adapter/storage/postgres"
	redisStorage "brokerwallet/internal/adapter/storage/redis"
	"brokerwallet/internal/core/ports"
	"brokerwallet/internal/service"
	"brokerwallet/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Broker Wallet")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	wdrRepo := pgStorage.NewWithdrawalRepo(pool)
	unholdRepo := pgStorage.NewUnholdRepo(pool)
	acctRepo := pgStorage.NewAccountRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis-backed collaborators
	notifier := redisStorage.NewNotifier(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	scheduler := service.NewTimerScheduler(cfg.Withdrawal.TimerRetryMax, cfg.Withdrawal.TimerRetryBackoff, log)

	// Initialize business services
	withdrawalSvc := service.NewWithdrawalService(
		wdrRepo,
		walletRepo,
		acctRepo,
		txRepo,
		transactor,
		scheduler,
		notifier,
		cfg.Withdrawal,
		log,
	)
	unholdSvc := service.NewUnholdService(
		unholdRepo,
		walletRepo,
		acctRepo,
		txRepo,
		transactor,
		notifier,
		log,
	)
	reportingSvc := service.NewReportingService(walletRepo, txRepo, log)

	// The scheduler delivers timer fires back into the withdrawal service.
	scheduler.Bind(withdrawalSvc.HandleTimer)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WithdrawalSvc:  withdrawalSvc,
		UnholdSvc:      unholdSvc,
		ReportingSvc:   reportingSvc,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop pending timers after in-flight requests have drained.
	scheduler.Shutdown()

	log.Info().Msg("Server exited")
}
