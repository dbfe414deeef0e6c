package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devhire-backend/config"
	_ "devhire-backend/docs" // Important for Swagger
	v1 "devhire-backend/internal/delivery/http/v1"
	"devhire-backend/internal/repository/postgres"
	"devhire-backend/internal/usecase"
	"devhire-backend/pkg/database"
	"devhire-backend/pkg/logger"
	"devhire-backend/pkg/redis"
	"devhire-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           DevHire API
// @version         1.0
// @description     Developer profiles, recruiter search and shortlists.
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	// 2. Setup Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	logger.Log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting DevHire backend")
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Setup Database
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	dbPool, err := database.NewPostgresConnection(startupCtx, cfg.DBUrl, cfg.DBMaxConns)
	if err != nil {
		cancelStartup()
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(startupCtx, dbPool); err != nil {
			cancelStartup()
			logger.Log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}
	cancelStartup()

	// 4. Setup Redis (optional)
	var redisProbe usecase.Pinger
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn().Err(err).Msg("Redis unavailable; search cache disabled, rate limiting in memory")
		}
		redisProbe = redis.HealthCheck
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	shortlistRepo := postgres.NewShortlistRepository(dbPool)

	// 6. Setup UseCases
	validate := validation.New()
	searchCache := redis.NewSearchCache(redis.Client())

	authUC := usecase.NewAuthUsecase(userRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo, searchCache, validate)
	searchUC := usecase.NewSearchUsecase(profileRepo, searchCache, cfg.SearchCacheTTL)
	shortlistUC := usecase.NewShortlistUsecase(shortlistRepo, validate)
	healthUC := usecase.NewHealthUsecase(dbPool.Ping, redisProbe)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		ProfileUC:   profileUC,
		SearchUC:    searchUC,
		ShortlistUC: shortlistUC,
		HealthUC:    healthUC,
		Config:      cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal().Err(err).Msg("Listen failed")
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
