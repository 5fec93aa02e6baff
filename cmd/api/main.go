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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/taskscribe-dev/taskscribe/pkg/validator"

	"github.com/taskscribe-dev/taskscribe/internal/adapter/handler"
	"github.com/taskscribe-dev/taskscribe/internal/adapter/repository"
	"github.com/taskscribe-dev/taskscribe/internal/infrastructure/cache"
	"github.com/taskscribe-dev/taskscribe/internal/infrastructure/database"
	"github.com/taskscribe-dev/taskscribe/internal/infrastructure/storage"
	httpmw "github.com/taskscribe-dev/taskscribe/internal/infrastructure/http/middleware"
	authuse "github.com/taskscribe-dev/taskscribe/internal/usecase/auth"
	"github.com/taskscribe-dev/taskscribe/internal/usecase/extraction"
	meetinguse "github.com/taskscribe-dev/taskscribe/internal/usecase/meeting"
	taskuse "github.com/taskscribe-dev/taskscribe/internal/usecase/task"
	pkgai "github.com/taskscribe-dev/taskscribe/pkg/ai"
	"github.com/taskscribe-dev/taskscribe/pkg/config"
	pkgemail "github.com/taskscribe-dev/taskscribe/pkg/email"
	"github.com/taskscribe-dev/taskscribe/pkg/jwt"
)

// @title           Taskscribe API
// @version         1.0
// @description     Meeting-to-task automation API: transcript submission, AI task extraction, and task routing

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	log.Println("Initializing dependencies...")

	// Initialize Database
	log.Println("Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Schema migrations run via sql-migrate. Production deployments apply
	// them in CI; development can opt in here.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("DB_AUTO_MIGRATE is enabled in production. Apply migrations with sql-migrate instead.")
		}
		log.Println("Applying migrations (development only)...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	// Initialize Redis
	log.Println("Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize repositories
	log.Println("Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize external clients
	log.Println("Initializing AI and email clients...")
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)
	resendClient := pkgemail.NewResendClient(&cfg.Resend)

	// Transcript archive is optional
	var archiver meetinguse.TranscriptArchiver
	if cfg.Storage.Enabled {
		log.Println("Initializing transcript archive...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO client: %v", err)
		}
		archiver = minioClient
	}

	// Initialize JWT manager
	log.Println("Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize services
	log.Println("Initializing services...")
	authService := authuse.NewService(userRepo, jwtManager, logger)
	extractionService := extraction.NewService(geminiClient, logger)
	resolverCache := cache.NewUserResolverCache(redisClient, 10*time.Minute)
	meetingService := meetinguse.NewService(
		meetingRepo,
		taskRepo,
		userRepo,
		extractionService,
		resendClient,
		resolverCache,
		archiver,
		logger,
	)
	taskService := taskuse.NewService(taskRepo, logger)

	// Initialize handlers
	log.Println("Initializing handlers...")
	authHandler := handler.NewAuth(authService, logger)
	meetingHandler := handler.NewMeeting(meetingService, logger)
	taskHandler := handler.NewTask(taskService, logger)

	// Setup router with handlers
	log.Println("Setting up routes...")
	authMW := httpmw.EchoAuth(jwtManager, userRepo)
	router := handler.NewRouter(cfg, authHandler, meetingHandler, taskHandler, authMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		log.Printf("Environment: %s", cfg.Server.Environment)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
