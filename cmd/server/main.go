package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/zenflow/backend/internal/api"
	"github.com/zenflow/backend/internal/auth"
	"github.com/zenflow/backend/internal/database"
	"github.com/zenflow/backend/internal/notify"
	"github.com/zenflow/backend/internal/subscription"
	"github.com/zenflow/backend/pkg/config"
	"github.com/zenflow/backend/pkg/queue"
	"github.com/zenflow/backend/pkg/util"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env)
	slog.SetDefault(logger)

	logger.Info("starting ZenFlow server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Warn("failed to connect to Redis, welcome mail disabled", "error", err)
		redisClient = nil
	}

	// Initialize Asynq client for background job enqueuing, plus an
	// inspector so /health can report queue depth
	var asynqClient *asynq.Client
	var inspector *asynq.Inspector
	var notifier auth.Notifier
	if redisClient != nil {
		asynqClient = queue.NewClient(&cfg.Redis)
		inspector = queue.NewInspector(&cfg.Redis)
		notifier = notify.NewQueueNotifier(asynqClient)
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	googleVerifier := auth.NewGoogleVerifier(cfg.Google.ClientID)
	authService := auth.NewService(db, jwtService, googleVerifier, notifier, logger)
	subscriptionService := subscription.NewService(db)

	if cfg.Google.ClientID == "" {
		logger.Warn("GOOGLE_CLIENT_ID not set, Google sign-in will reject all credentials")
	}

	// Create router
	router := api.NewRouter(api.RouterConfig{
		DB:                  db,
		Redis:               redisClient,
		Inspector:           inspector,
		Logger:              logger,
		JWTService:          jwtService,
		AuthService:         authService,
		SubscriptionService: subscriptionService,
		RateLimitReqs:       cfg.RateLimit.Requests,
		RateLimitSecs:       cfg.RateLimit.WindowSeconds,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Close Asynq client and inspector
	if asynqClient != nil {
		asynqClient.Close()
	}
	if inspector != nil {
		inspector.Close()
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	// Close database connection
	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("server stopped")
}
