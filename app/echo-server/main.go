package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"postPilot/app/echo-server/router"
	"postPilot/business/analysis"
	"postPilot/business/draft"
	"postPilot/business/experiment"
	"postPilot/business/scoring"
	"postPilot/internal/middleware"
	"postPilot/internal/repository/mlapi"
	openaiRepo "postPilot/internal/repository/openai"
	psqlRepo "postPilot/internal/repository/postgres"
	redisRepo "postPilot/internal/repository/redis"
	"postPilot/internal/rest"
	"postPilot/pkg/config"
	"postPilot/pkg/database"
	redisdb "postPilot/pkg/database/redis"
	"postPilot/pkg/logger"
	"postPilot/pkg/metrics"
	"postPilot/pkg/ratelimit"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting PostPilot", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		_ = redisClient.Close()
	}()

	metrics.Init()

	// Init upstream clients
	classifier := mlapi.NewClassifierRepository(mlapi.Config{
		BaseURL: cfg.MLAPI.BaseURL,
		Timeout: time.Duration(cfg.MLAPI.TimeoutSecs) * time.Second,
	})

	judgeLimiter := ratelimit.NewBucket(ratelimit.Config{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
	})
	judgeEvaluator := openaiRepo.NewJudgeEvaluator(openaiRepo.Config{
		APIKey: cfg.OpenAI.APIKey,
		Model:  cfg.OpenAI.Model,
	}, judgeLimiter)

	// Init repo
	draftRepo := psqlRepo.NewDraftRepository(db)
	personaRepo := psqlRepo.NewPersonaRepository(db)
	analysisRepo := psqlRepo.NewAnalysisRepository(db)
	experimentRepo := psqlRepo.NewExperimentRepository(db)
	experimentCfgRepo := psqlRepo.NewExperimentConfigRepository(db)
	analysisCache := redisRepo.NewAnalysisCache(redisClient)

	// Init service
	analysisService := analysis.NewService(classifier, analysisRepo, analysisCache, scoring.DefaultConfig(), time.Hour)
	draftService := draft.NewDraftService(draftRepo)
	engine := experiment.NewEngine(judgeEvaluator, nil)
	experimentService := experiment.NewService(
		experimentRepo,
		personaRepo,
		draftRepo,
		experimentCfgRepo,
		engine,
		experiment.DefaultConfig(),
	)

	// Init handler
	analysisHandler := rest.NewAnalysisHandler(analysisService)
	draftHandler := rest.NewDraftHandler(draftService)
	experimentHandler := rest.NewExperimentHandler(experimentService)
	adminHandler := rest.NewExperimentAdminHandler(experimentCfgRepo, personaRepo)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupAnalysisRoutes(api, analysisHandler)
	router.SetupDraftRoutes(api, draftHandler)
	router.SetupExperimentRoutes(api, experimentHandler)
	router.SetupExperimentAdminRoutes(api, adminHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
