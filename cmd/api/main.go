package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"colorspin-backend/internal/catalog"
	"colorspin-backend/internal/config"
	"colorspin-backend/internal/handlers"
	"colorspin-backend/internal/middleware"
	"colorspin-backend/internal/services"
	"colorspin-backend/internal/spin"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisService.Close()

	jwtService := services.NewJWTService(cfg)

	cat := catalog.Build()
	logger.Info().Int("tiers", len(cat.Tiers)).Msg("color catalog built")

	ledger := services.NewLedger(redisService, logger)
	attacks := services.NewAttackResolver(ledger, redisService, spin.DefaultRNG(), logger)

	wsHandler := handlers.NewWebSocketHandler(redisService, logger)
	authHandler := handlers.NewAuthHandler(redisService, jwtService)
	userHandler := handlers.NewUserHandler(redisService, ledger, cat)
	spinHandler := handlers.NewSpinHandler(cat, ledger, redisService, attacks, wsHandler)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(redisService))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.POST("/logout", userHandler.Logout)
		protected.GET("/notifications", userHandler.Notifications)
		protected.GET("/transactions", userHandler.Transactions)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		protected.GET("/catalog", spinHandler.Catalog)
		protected.POST("/spin", spinHandler.Spin)
		protected.POST("/spin/mega", spinHandler.MegaSpin)
		protected.POST("/bonus/claim", spinHandler.ClaimBonus)
		protected.GET("/leaderboard", spinHandler.Leaderboard)
		protected.POST("/attack", spinHandler.Attack)

		shop := protected.Group("/shop")
		{
			shop.POST("/booster", spinHandler.BuyBooster)
			shop.POST("/attack-coin", spinHandler.BuyAttackCoin)
			shop.POST("/zone", spinHandler.UnlockZone)
		}

		profile := protected.Group("/profile")
		{
			profile.POST("/pfp", userHandler.SetPFP)
			profile.POST("/reset", userHandler.ResetProgress)
		}
	}

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
