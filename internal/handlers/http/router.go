package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rafabene/mediafeed-backend/internal/domain/ports"
	"github.com/rafabene/mediafeed-backend/internal/handlers/middleware"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/config"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/events"
	"github.com/rafabene/mediafeed-backend/internal/infrastructure/i18n"
	"github.com/rafabene/mediafeed-backend/internal/services"
)

// Dependencies reúne tudo o que as rotas precisam; montado uma vez em main
type Dependencies struct {
	Config      *config.Config
	Logger      ports.Logger
	I18n        *i18n.Service
	AuthService *services.AuthService // nil quando AUTH_ENABLED=false
	UserService *services.UserService // nil quando AUTH_ENABLED=false
	PostService *services.PostService
	Hub         *events.Hub
	Ready       ReadinessCheck
}

// NewRouter monta o engine do gin com middlewares e rotas
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.Metrics())

	// base URL para os URIs de tipo RFC 7807
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	router.Use(middleware.NewI18nMiddleware(deps.I18n).DetectLanguage())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	var authenticator middleware.Authenticator
	if deps.AuthService != nil {
		authenticator = deps.AuthService
	}
	auth := middleware.NewAuthMiddleware(authenticator, cfg.Auth.Enabled, deps.Logger)

	health := NewHealthHandler(cfg.Env, deps.Ready)
	router.GET("/", Root)
	router.GET("/health", health.Health)
	router.GET("/health/ready", health.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	posts := NewPostHandler(deps.PostService, cfg.Upload.MaxBytes, deps.Logger)
	protected := router.Group("", auth.RequireAuth())
	{
		protected.POST("/upload", posts.Upload)
		protected.GET("/feed", posts.Feed)
		protected.DELETE("/posts/:id", posts.Delete)

		if deps.Hub != nil {
			stream := NewFeedStreamHandler(deps.Hub, cfg.CORS.AllowedOrigins, deps.Logger)
			protected.GET("/feed/ws", stream.Stream)
		}
	}

	if cfg.Auth.Enabled {
		registerIdentityRoutes(router, deps, auth)
	}

	return router
}

func registerIdentityRoutes(router *gin.Engine, deps Dependencies, auth *middleware.AuthMiddleware) {
	authHandler := NewAuthHandler(deps.AuthService, deps.Logger)
	userHandler := NewUserHandler(deps.UserService, deps.Logger)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/jwt/login", authHandler.Login)
		authGroup.POST("/jwt/logout", auth.RequireAuth(), authHandler.Logout)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.POST("/request-verify-token", authHandler.RequestVerifyToken)
		authGroup.POST("/verify", authHandler.Verify)
	}

	users := router.Group("/users", auth.RequireAuth())
	{
		users.GET("/me", userHandler.GetMe)
		users.PATCH("/me", userHandler.UpdateMe)

		admin := users.Group("", auth.RequireSuperuser())
		admin.GET("/:id", userHandler.GetUser)
		admin.PATCH("/:id", userHandler.UpdateUser)
		admin.DELETE("/:id", userHandler.DeleteUser)
	}
}
