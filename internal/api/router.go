package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sweetshop/sweet-shop-api/internal/api/handler"
	"github.com/sweetshop/sweet-shop-api/internal/api/middleware"
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/service"
	mongodb "github.com/sweetshop/sweet-shop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sweetshop/sweet-shop-api/internal/infrastructure/db/redis"
	"github.com/sweetshop/sweet-shop-api/internal/pkg/config"
)

// RouterDeps carries the shared infrastructure the router wires handlers to.
// The dispatcher is owned by main so its lifecycle outlives request handling.
type RouterDeps struct {
	DB     *mongo.Database
	Redis  *redis.Client
	Config *config.Config
	Log    zerolog.Logger
	Ledger *service.LedgerService
	Sink   service.MovementSink
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(deps.DB)
	authService := service.NewAuthService(authRepo, deps.Config.JWTSecret, deps.Config.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)

	sweetRepo := mongodb.NewSweetRepository(deps.DB)
	catalogCache := redisdb.NewCatalogCache(deps.Redis)
	sweetService := service.NewSweetService(sweetRepo, catalogCache, deps.Sink, deps.Log)
	sweetHandler := handler.NewSweetHandler(sweetService, deps.Ledger)

	authRequired := middleware.Auth(deps.Config.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public routes ---
	e.GET("/", handler.Welcome)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	readiness := handler.NewReadinessHandler(deps.DB, deps.Redis)
	e.GET("/health", handler.Liveness)
	e.GET("/health/ready", readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Catalog routes (token required) ---
	sweets := e.Group("/sweets", authRequired)
	sweets.GET("", sweetHandler.List)
	sweets.GET("/search", sweetHandler.Search)
	sweets.POST("/:id/purchase", sweetHandler.Purchase)

	// --- Admin-only catalog management ---
	sweets.POST("", sweetHandler.Create, adminOnly)
	sweets.PUT("/:id", sweetHandler.Update, adminOnly)
	sweets.DELETE("/:id", sweetHandler.Delete, adminOnly)
	sweets.POST("/:id/restock", sweetHandler.Restock, adminOnly)
	sweets.GET("/:id/movements", sweetHandler.Movements, adminOnly)

	return e
}
