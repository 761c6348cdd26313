package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/qwellan/peerpay/internal/adapter/http"
	"github.com/qwellan/peerpay/internal/adapter/http/handler"
	postgresRepo "github.com/qwellan/peerpay/internal/adapter/repository/postgres"
	redisRepo "github.com/qwellan/peerpay/internal/adapter/repository/redis"
	"github.com/qwellan/peerpay/internal/infrastructure/auth"
	"github.com/qwellan/peerpay/internal/infrastructure/config"
	"github.com/qwellan/peerpay/internal/infrastructure/logger"
	"github.com/qwellan/peerpay/internal/infrastructure/metrics"
	"github.com/qwellan/peerpay/internal/infrastructure/postgres"
	"github.com/qwellan/peerpay/internal/infrastructure/redis"
	"github.com/qwellan/peerpay/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	paymentRepo := postgresRepo.NewPaymentRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	accountIDGen := postgresRepo.NewAccountIDGenerator()
	retrier := postgresRepo.NewRetrier(log)

	// Initialize use cases
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, paymentRepo, cache, log)
	accountUC := usecase.NewAccountUseCase(accountRepo, cache, cfg.AccountCacheTTL, log)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo)
	userUC := usecase.NewUserUseCase(userRepo, cache, idGen, accountIDGen)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	m := metrics.New()

	// Initialize handlers
	transferHandler := handler.NewTransferHandler(transferUC, retrier, m)
	accountHandler := handler.NewAccountHandler(accountUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC)
	userHandler := handler.NewUserHandler(userUC, jwtManager, m)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransferHandler:    transferHandler,
		AccountHandler:     accountHandler,
		PaymentHandler:     paymentHandler,
		UserHandler:        userHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		Metrics:            m,
		Logger:             log,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
