package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/riftbuddy/riftbuddy-api/docs"
	"github.com/riftbuddy/riftbuddy-api/internal/api/handler"
	"github.com/riftbuddy/riftbuddy-api/internal/api/middleware"
	"github.com/riftbuddy/riftbuddy-api/internal/core/domain"
	"github.com/riftbuddy/riftbuddy-api/internal/core/service"
	"github.com/riftbuddy/riftbuddy-api/internal/infrastructure/config"
	mongodb "github.com/riftbuddy/riftbuddy-api/internal/infrastructure/db/mongo"
	redisdb "github.com/riftbuddy/riftbuddy-api/internal/infrastructure/db/redis"
	"github.com/riftbuddy/riftbuddy-api/internal/riot"
)

const sessionTTL = time.Hour

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, registry *domain.RoleRegistry, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("riftbuddy"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	friendRepo := mongodb.NewFriendRepository(db)

	riotClient := riot.NewClient(riot.Config{
		ClientID:     cfg.Riot.ClientID,
		ClientSecret: cfg.Riot.ClientSecret,
		RedirectURI:  cfg.Riot.RedirectURI,
	})
	stateStore := redisdb.NewLoginStateStore(rdb)

	authService := service.NewAuthService(userRepo, riotClient, stateStore, registry, cfg.JWTSecret, sessionTTL, log)
	userService := service.NewUserService(userRepo, friendRepo, roleRepo, registry, log)
	roleService := service.NewRoleService(roleRepo, log)
	friendService := service.NewFriendService(friendRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	friendHandler := handler.NewFriendHandler(friendService)

	authMW := middleware.Auth(cfg.JWTSecret)
	requireAdmin := middleware.RBAC(registry, userService.ResolveRoleID, domain.TierAdmin)
	requireSuperAdmin := middleware.RBAC(registry, userService.ResolveRoleID, domain.TierSuperAdmin)

	// --- Auth routes ---
	e.GET("/auth/riot/login", authHandler.Login)
	e.GET("/auth/riot/callback", authHandler.Callback)
	e.GET("/auth/profile", authHandler.Profile, authMW)

	// --- Role routes: reads need admin, writes need superAdmin ---
	roles := e.Group("/api/role", authMW)
	roles.GET("", roleHandler.List, requireAdmin)
	roles.GET("/:id", roleHandler.Get, requireAdmin)
	roles.POST("", roleHandler.Create, requireSuperAdmin)
	roles.PUT("/:id", roleHandler.Update, requireSuperAdmin)
	roles.DELETE("/:id", roleHandler.Delete, requireSuperAdmin)

	// --- User directory ---
	users := e.Group("/api/user", authMW)
	users.GET("", userHandler.List, requireAdmin)
	users.POST("", userHandler.Create, requireAdmin)
	users.GET("/self", userHandler.Self)
	users.PUT("/self", userHandler.UpdateSelf)
	users.GET("/others", userHandler.Others)
	users.GET("/search", userHandler.Search)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update, requireAdmin)
	users.DELETE("/:id", userHandler.Delete, requireAdmin)

	// --- Social graph ---
	friends := e.Group("/api/friend", authMW)
	friends.GET("", friendHandler.List)
	friends.GET("/requests", friendHandler.ListRequests)
	friends.POST("/request", friendHandler.SendRequest)
	friends.POST("/request/:senderId/accept", friendHandler.Accept)
	friends.POST("/request/:senderId/decline", friendHandler.Decline)
	friends.DELETE("/:friendId", friendHandler.Remove)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
