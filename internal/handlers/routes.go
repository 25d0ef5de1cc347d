package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dicebank-backend/internal/middleware"
	"dicebank-backend/internal/services"
)

type RouterConfig struct {
	GameEngine  *services.GameEngine
	JWTService  *services.JWTService
	RateLimiter services.RateLimiter
	WebSocket   *WebSocketHandler
	BetLimit    int
	Logger      *zap.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(middleware.CORS())

	sessionHandler := NewSessionHandler(cfg.JWTService, cfg.Logger)
	gameHandler := NewGameHandler(cfg.GameEngine, cfg.Logger)

	router.POST("/auth/session", sessionHandler.CreateSession)

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTService))
	{
		protected.GET("/session", sessionHandler.GetSession)
		protected.GET("/state", gameHandler.GetState)
		protected.GET("/balance", gameHandler.GetBalance)
		protected.GET("/history", gameHandler.GetHistory)
		protected.GET("/stats", gameHandler.GetStats)

		if cfg.WebSocket != nil {
			protected.GET("/ws", cfg.WebSocket.HandleWebSocket)
		}

		dice := protected.Group("/dice")
		{
			dice.POST("/bet",
				middleware.RateLimitMiddleware(cfg.RateLimiter, "bet", cfg.BetLimit, services.DefaultRateLimitWindow, cfg.Logger),
				gameHandler.PlaceBet,
			)
		}
	}

	return router
}
