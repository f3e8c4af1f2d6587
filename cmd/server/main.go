package main

import (
	"log"
	"net/http"
	"os"

	_ "jobportal/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	openai "github.com/sashabaranov/go-openai"

	"jobportal/internal/auth"
	"jobportal/internal/cache"
	"jobportal/internal/config"
	"jobportal/internal/db"
	"jobportal/internal/handler"
	"jobportal/internal/mail"
	"jobportal/internal/model"
	"jobportal/internal/ocr"
	"jobportal/internal/repository"
	"jobportal/internal/router"
	"jobportal/internal/service"
	"jobportal/internal/storage"
)

// @title Job Portal API
// @version 1.0
// @description Job portal API with user accounts, job postings, applications, and AI resume analysis.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Application{},
			&model.Job{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Job{},
		&model.Application{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	jobRepo := repository.NewJobRepository(gormDB)
	applicationRepo := repository.NewApplicationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize collaborators
	mailer := mail.NewSendGridMailer(cfg.SendGridKey, cfg.SendGridFrom)
	uploader, err := storage.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		log.Fatalf("cloudinary init: %v", err)
	}
	extractor := ocr.NewTesseractExtractor(cfg.OCRLanguage)
	llmClient := openai.NewClient(cfg.OpenAIKey)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, mailer, cfg.FrontendURL)
	userService := service.NewUserService(userRepo)
	jobService := service.NewJobService(jobRepo, userRepo)
	applicationService := service.NewApplicationService(applicationRepo, jobRepo, uploader, service.ApplicationLimits{
		MaxPerJob:    cfg.MaxApplicationsPerJob,
		MaxPerWindow: cfg.MaxApplicationsPerWindow,
		WindowDays:   cfg.ApplicationWindowDays,
	})
	resumeService, err := service.NewResumeService(extractor, llmClient)
	if err != nil {
		log.Fatalf("resume service init: %v", err)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	jobHandler := handler.NewJobHandler(jobService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	resumeHandler := handler.NewResumeHandler(resumeService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		tokenStore,
		authHandler,
		userHandler,
		jobHandler,
		applicationHandler,
		resumeHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
