package app

import (
	"fmt"

	"recruitdesk_backend/internal/auth"
	"recruitdesk_backend/internal/config"
	"recruitdesk_backend/internal/email"
	"recruitdesk_backend/internal/handlers"
	"recruitdesk_backend/internal/logger"
	"recruitdesk_backend/internal/middleware"
	"recruitdesk_backend/internal/models"
	"recruitdesk_backend/internal/repositories"
	"recruitdesk_backend/internal/routes"
	"recruitdesk_backend/internal/services"
	"recruitdesk_backend/internal/validator"
	"recruitdesk_backend/realtime"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// Migrate applies the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Candidate{},
		&models.Note{},
		&models.Mention{},
		&models.Notification{},
	)
}

// SetupRouter assembles the full gin engine. Split out from Run so the test
// harness can mount it on httptest with its own database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	hub := realtime.NewHub(cfg.Realtime.SendBuffer)
	wsHandler := realtime.NewHandler(hub, tokenManager)

	serviceContainer := initializeServices(cfg, gormDB, tokenManager, hub)
	appHandlers := initializeHandlers(serviceContainer, tokenManager)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler, tokenManager)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, tm *auth.TokenManager, publisher realtime.Publisher) *services.ServiceContainer {
	var emailProvider email.Provider = email.NopProvider{}
	if cfg.Email.Enabled {
		emailProvider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		logger.Info("SMTP mention emails enabled", "host", cfg.Email.SMTPHost)
	}

	userRepo := repositories.NewUserRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	candidateRepo := repositories.NewCandidateRepository(gormDB)
	noteRepo := repositories.NewNoteRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)

	authService := services.NewAuthService(userRepo, refreshTokenRepo, tm)
	userService := services.NewUserService(userRepo)
	candidateService := services.NewCandidateService(candidateRepo)
	noteService := services.NewNoteService(gormDB, noteRepo, candidateRepo, userRepo, notificationRepo, publisher, emailProvider)
	notificationService := services.NewNotificationService(notificationRepo, publisher)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		CandidateService:    candidateService,
		NoteService:         noteService,
		NotificationService: notificationService,
	}
}

func initializeHandlers(sc *services.ServiceContainer, tm *auth.TokenManager) *handlers.AppHandlers {
	v := validator.New()
	base := handlers.NewBaseHandler(v)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(base, sc.AuthService),
		UserHandler:         handlers.NewUserHandler(base, sc.UserService),
		CandidateHandler:    handlers.NewCandidateHandler(base, sc.CandidateService, sc.NoteService),
		NotificationHandler: handlers.NewNotificationHandler(base, sc.NotificationService),
		RealtimeHandler:     handlers.NewRealtimeHandler(base, tm),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	return ginRouter
}
