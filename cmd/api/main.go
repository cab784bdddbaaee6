package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/freshmart/backend/internal/auth"
	"github.com/freshmart/backend/internal/cache"
	"github.com/freshmart/backend/internal/config"
	"github.com/freshmart/backend/internal/database"
	"github.com/freshmart/backend/internal/handlers"
	"github.com/freshmart/backend/internal/routes"
	"github.com/freshmart/backend/internal/services"
)

func main() {
	// A missing .env is fine; production injects real environment vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg)

	if cfg.JWTSecret == "" {
		logger.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := database.Open(cfg.DBDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	logger.Info().Msg("database connection established")

	var productCache *cache.ProductCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		productCache = cache.NewProductCache(client)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("redis cache enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set, product cache disabled")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	h := &handlers.Handlers{
		Categories:     services.NewCategoryService(db),
		Products:       services.NewProductService(db, productCache),
		Users:          services.NewUserService(db),
		Suppliers:      services.NewSupplierService(db),
		Orders:         services.NewOrderService(db),
		SupplierOrders: services.NewSupplierOrderService(db),
		Tokens:         auth.NewTokenManager(cfg.JWTSecret),
	}

	router := routes.SetupRouter(h, logger, cfg.CORSOrigin)

	logger.Info().Str("port", cfg.ServerPort).Msg("starting API server")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsProduction() {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	return zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
