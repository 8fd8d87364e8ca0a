package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	"teamspace/internal/config"
	"teamspace/internal/database"
	"teamspace/internal/events"
	"teamspace/internal/handlers"
	"teamspace/internal/imagesearch"
	"teamspace/internal/logger"
	"teamspace/internal/middleware"
	"teamspace/internal/services"
	"teamspace/internal/session"
	"teamspace/internal/store"
	"teamspace/internal/validator"

	_ "teamspace/internal/docs" // Import swagger docs
)

// @title           Team Space API
// @version         1.0
// @description     Shared budgeting workspaces with spending categories, transactions and members.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

const shutdownTimeout = 30 * time.Second

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("database close failed", "error", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	publisher, err := events.Connect(appConfig.AMQPURL, appConfig.AMQPExchange)
	if err != nil {
		return fmt.Errorf("failed to connect event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warnw("event publisher close failed", "error", err)
		}
	}()

	db := dbManager.DB()
	images := imagesearch.NewPicker(
		imagesearch.NewUnsplashClient(&http.Client{}, appConfig.UnsplashBaseURL, appConfig.UnsplashAccessKey),
		appConfig.ImageSearchTimeout,
	)
	deps := services.Deps{
		Store:   store.NewGormStore(db),
		Images:  images,
		Audit:   services.NewAuditService(db, publisher),
		Timeout: appConfig.StoreTimeout,
		Retries: appConfig.ConflictRetries,
	}

	teamSpaceService := services.NewTeamSpaceService(deps)
	memberService := services.NewMemberService(deps)
	categoryService := services.NewCategoryService(deps)
	transactionService := services.NewTransactionService(deps)
	queryService := services.NewQueryService(deps)

	sessions := session.NewManager(appConfig.JWTSecret, appConfig.JWTExpirationDur)
	validator.Register()

	api := handlers.Handlers{
		TeamSpaces:   handlers.NewTeamSpaceHandler(teamSpaceService, queryService),
		Members:      handlers.NewMemberHandler(memberService, queryService),
		Categories:   handlers.NewCategoryHandler(categoryService, queryService),
		Transactions: handlers.NewTransactionHandler(transactionService, queryService),
		Sessions:     handlers.NewSessionHandler(sessions, memberService),
	}

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(appConfig.CORSAllowedOrigin))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.MetricsAuth(appConfig.MetricsAPIKey), gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.Session(sessions))
	api.RegisterRoutes(v1)

	srv := &http.Server{
		Addr:           ":" + appConfig.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting team space server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Info("Server stopped gracefully")
		return nil
	})
	return g.Wait()
}
