package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/rafabene/mediafeed-backend/docs"
	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	httphandlers "github.com/rafabene/mediafeed-backend/internal/handlers/http"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/auth"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/config"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/events"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/i18n"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/logging"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/storage/s3"
	"github.com/rafabene/mediafeed-backend/internal/services"
)

// @title                       Media Feed API
// @version                     1.0
// @description                 Upload de mídia, feed e remoção de posts.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting mediafeed backend",
		"env", cfg.Env,
		"version", "dev",
		"auth_enabled", cfg.Auth.Enabled,
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, gormLogLevel(cfg), logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	defer func() { _ = postgres.Close(db) }()

	if err := postgres.RunMigrations(ctx, db, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService(i18n.Locales(), "en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Storage de objetos
	gateway, err := s3.NewGateway(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize upload gateway", "error", err)
		log.Fatal(err)
	}

	// Feed ao vivo
	hub := events.NewHub(logger)
	go hub.Run(ctx)

	var publisher ports.EventPublisher = hub
	if cfg.Redis.URL != "" {
		redisClient, err := events.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			log.Fatal(err)
		}
		defer func() { _ = redisClient.Close() }()

		broker := events.NewRedisBroker(redisClient, hub, logger)
		go broker.Run(ctx)
		publisher = broker
	}

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	deps := httphandlers.Dependencies{
		Config: cfg,
		Logger: logger,
		I18n:   i18nService,
		PostService: services.NewPostService(postRepo, uow, gateway, publisher, logger, services.PostServiceConfig{
			AuthEnabled:  cfg.Auth.Enabled,
			UploadFolder: cfg.Upload.Folder,
		}),
		Hub: hub,
		Ready: func(ctx context.Context) error {
			return postgres.Ping(ctx, db)
		},
	}
	if cfg.Auth.Enabled {
		hasher := auth.NewBcryptHasher(0)
		tokens := auth.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.ResetExpiry, cfg.JWT.VerifyExpiry)
		deps.AuthService = services.NewAuthService(userRepo, uow, hasher, tokens, logger)
		deps.UserService = services.NewUserService(userRepo, uow, hasher, logger)
	}

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httphandlers.NewRouter(deps)

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// encerra hub e relay antes do servidor para liberar os websockets
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	if cfg.IsProduction() {
		return gormlogger.Warn
	}
	return gormlogger.Info
}
