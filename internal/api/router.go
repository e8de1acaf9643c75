package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/zenflow/backend/internal/api/handlers"
	"github.com/zenflow/backend/internal/api/middleware"
	"github.com/zenflow/backend/internal/auth"
	"github.com/zenflow/backend/internal/subscription"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB                  *gorm.DB
	Redis               *redis.Client
	Inspector           *asynq.Inspector
	Logger              *slog.Logger
	JWTService          *auth.JWTService
	AuthService         *auth.Service
	SubscriptionService *subscription.Service
	AllowedOrigins      []string // CORS allowed origins
	RateLimitReqs       int      // Rate limit requests per window
	RateLimitSecs       int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - applied globally to prevent abuse
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	// CORS - restrict to configured origins, or allow the local frontend in development
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis, cfg.Inspector)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	subscriptionHandler := handlers.NewSubscriptionHandler(cfg.SubscriptionService)

	requireAuth := middleware.Auth(cfg.JWTService, cfg.Logger)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/google", authHandler.GoogleLogin)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/verify", authHandler.Verify)
		})
	})

	r.Route("/api/subscription", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/select", subscriptionHandler.SelectPlan)
	})

	return &Router{r}
}
