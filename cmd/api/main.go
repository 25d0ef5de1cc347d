package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dicebank-backend/internal/config"
	"dicebank-backend/internal/handlers"
	"dicebank-backend/internal/logger"
	"dicebank-backend/internal/services"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	if envErr != nil {
		zlog.Info("No .env file found, using environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := services.NewBankrollStore(cfg.StartingBalance)
	gameEngine := services.NewGameEngine(store, services.RandomRoller{}, zlog)
	jwtService := services.NewJWTService(cfg)
	wsHandler := handlers.NewWebSocketHandler(gameEngine, zlog)
	defer wsHandler.Close()

	broadcasters := []services.Broadcaster{wsHandler}
	var rateLimiter services.RateLimiter

	if cfg.RedisEnabled() {
		redisService, err := services.NewRedisService(ctx, cfg, zlog)
		if err != nil {
			zlog.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisService.Close()

		rateLimiter = redisService
		broadcasters = append(broadcasters, redisService)
	} else {
		zlog.Info("REDIS_URL not set, bet rate limiting and state fan-out disabled")
	}

	detach := services.AttachBroadcasters(store, broadcasters...)
	defer detach()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		GameEngine:  gameEngine,
		JWTService:  jwtService,
		RateLimiter: rateLimiter,
		WebSocket:   wsHandler,
		BetLimit:    cfg.BetRateLimit,
		Logger:      zlog,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.Float64("starting_balance", cfg.StartingBalance),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Server shutdown failed", zap.Error(err))
	}
	zlog.Info("Server stopped")
}
