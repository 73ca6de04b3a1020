package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"ecofinds/internal/config"
	custommiddleware "ecofinds/internal/middleware"
	"ecofinds/internal/pricing"
	"ecofinds/internal/repository"
	"ecofinds/internal/service"
	"ecofinds/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))

	router.Get("/health", s.health)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	cartRepo := repository.NewCartRepository(redisClient, cfg.Cart.TTL)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, purchaseRepo, pricing.NewCalculator(cfg.Pricing), logger)
	purchaseService := service.NewPurchaseService(purchaseRepo)
	profileService := service.NewProfileService(profileRepo, logger)

	// API routes share one rate limit per client; /health stays unlimited
	router.Group(func(r chi.Router) {
		r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit",
		}, logger))

		transport.NewCatalogHandler(catalogService, logger).RegisterRoutes(r)
		transport.NewCartHandler(cartService, logger).RegisterRoutes(r)
		transport.NewUserHandler(purchaseService, profileService, logger).RegisterRoutes(r)
	})

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// health reports 503 when either store is unreachable
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	checks := map[string]string{"database": "up", "redis": "up"}
	status := http.StatusOK

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("Database health check failed", zap.Error(err))
		checks["database"] = "down"
		status = http.StatusServiceUnavailable
	}
	if err := s.redis.Ping(ctx).Err(); err != nil {
		s.logger.Warn("Redis health check failed", zap.Error(err))
		checks["redis"] = "down"
		status = http.StatusServiceUnavailable
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	custommiddleware.RespondWithJSON(w, status, map[string]interface{}{
		"status": overall,
		"checks": checks,
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}
