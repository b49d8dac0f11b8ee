package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/database"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/auth"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/config"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/email"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/fileaccess"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/handlers"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/logger"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/middleware"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/repositories"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/routes"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/services"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/storage"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/validator"
	"github.com/CAPSTONE-EduMatch/EduMatch-UI-sub000/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	worker := workers.NewPostWorker(
		repositories.NewPostRepository(gormDB),
		repositories.NewRefreshTokenRepository(gormDB),
	)
	worker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter builds the full HTTP stack. Split out of Run so tests can
// assemble the router against their own database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	logger.Info("storage initialized", "type", cfg.Storage.Type)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTL)*time.Minute)

	container := initializeServices(cfg, gormDB, storageInstance, tokens)
	appHandlers := initializeHandlers(container)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(router, appHandlers, tokens)
	return router
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage, tokens *auth.TokenManager) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		smtpCfg := email.DefaultConfig()
		smtpCfg.Host = cfg.Email.SMTPHost
		smtpCfg.Port = cfg.Email.SMTPPort
		smtpCfg.Username = cfg.Email.SMTPUsername
		smtpCfg.Password = cfg.Email.SMTPPassword
		smtpCfg.FromEmail = cfg.Email.FromEmail
		smtpCfg.FromName = cfg.Email.FromName
		smtpCfg.UseTLS = cfg.Email.UseTLS
		smtpCfg.BaseURL = cfg.Storage.BaseURL

		renderer := email.NewTemplateManager()
		if cfg.Email.TemplatesDir != "" {
			if err := renderer.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
				logger.WithError(err).Warn("failed to load mail templates, using built-ins")
			}
		}
		emailProvider = email.NewSMTPProvider(smtpCfg, renderer)
	} else {
		logger.Warn("SMTP not configured, outgoing mail is discarded")
		emailProvider = &NopEmailProvider{}
	}

	userRepo := repositories.NewUserRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	postRepo := repositories.NewPostRepository(gormDB)
	applicationRepo := repositories.NewApplicationRepository(gormDB)
	documentRepo := repositories.NewDocumentRepository(gormDB)
	snapshotRepo := repositories.NewSnapshotRepository(gormDB)
	chatRepo := repositories.NewChatRepository(gormDB)
	accessStore := repositories.NewFileAccessStore(gormDB)

	uploadService := services.NewUploadService(storageInstance, cfg.Upload)
	authService := services.NewAuthService(userRepo, profileRepo, refreshTokenRepo, tokens, emailProvider)
	profileService := services.NewProfileService(profileRepo)
	postService := services.NewPostService(postRepo, profileRepo)
	applicationService := services.NewApplicationService(applicationRepo, postRepo, documentRepo, snapshotRepo, profileRepo, userRepo, uploadService, emailProvider)
	documentService := services.NewDocumentService(documentRepo, snapshotRepo, uploadService)
	chatService := services.NewChatService(chatRepo, userRepo, uploadService)

	accessLog := logger.GetLogger().With(slog.String("component", "fileaccess"))
	fileAccessService := fileaccess.NewService(
		fileaccess.NewKeyNormalizer(cfg.Storage.Bucket),
		fileaccess.NewResolver(accessStore, accessLog),
		fileaccess.NewMemoryDecisionCache(time.Duration(cfg.FileAccess.CacheTTLSeconds)*time.Second),
		storageInstance,
		accessLog,
	)

	return &services.ServiceContainer{
		AuthService:        authService,
		ProfileService:     profileService,
		PostService:        postService,
		ApplicationService: applicationService,
		DocumentService:    documentService,
		ChatService:        chatService,
		UploadService:      uploadService,
		FileAccessService:  fileAccessService,
		EmailService:       emailProvider,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(base, container.AuthService),
		ProfileHandler:     handlers.NewProfileHandler(base, container.ProfileService),
		PostHandler:        handlers.NewPostHandler(base, container.PostService),
		ApplicationHandler: handlers.NewApplicationHandler(base, container.ApplicationService),
		DocumentHandler:    handlers.NewDocumentHandler(base, container.DocumentService),
		ChatHandler:        handlers.NewChatHandler(base, container.ChatService),
		FileHandler:        handlers.NewFileHandler(base, container.FileAccessService, fileaccess.NewContextIdentityResolver()),
	}
}
