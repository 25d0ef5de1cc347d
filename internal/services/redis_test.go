package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"dicebank-backend/internal/config"
	"dicebank-backend/internal/models"
	"dicebank-backend/internal/services"
)

func setupTestRedis(t *testing.T) *services.RedisService {
	t.Helper()

	cfg := config.Defaults()
	cfg.RedisURL = "localhost:6379"

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	redisService, err := services.NewRedisService(ctx, &cfg, nil)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { redisService.Close() })
	return redisService
}

func TestRedisRateLimit(t *testing.T) {
	redisService := setupTestRedis(t)
	ctx := context.Background()
	key := models.GenerateSessionID()

	defer redisService.ClearRateLimit(ctx, key, "bet")

	for i := 0; i < 3; i++ {
		allowed, err := redisService.CheckRateLimit(ctx, key, "bet", 3, time.Minute)
		if err != nil {
			t.Fatalf("Failed to check rate limit: %v", err)
		}
		if !allowed {
			t.Fatalf("Bet %d should be allowed", i+1)
		}
	}

	allowed, err := redisService.CheckRateLimit(ctx, key, "bet", 3, time.Minute)
	if err != nil {
		t.Fatalf("Failed to check rate limit: %v", err)
	}
	if allowed {
		t.Error("Fourth bet should be rate limited")
	}
}

func TestRedisStatePublish(t *testing.T) {
	redisService := setupTestRedis(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	pubsub := client.Subscribe(ctx, services.ChannelBankroll)
	defer pubsub.Close()
	if _, err := pubsub.Receive(ctx); err != nil {
		t.Fatalf("Failed to subscribe: %v", err)
	}

	store := services.NewBankrollStore(1000)
	detach := services.AttachBroadcasters(store, redisService)
	defer detach()

	store.SetBalance(1234.5)

	select {
	case msg := <-pubsub.Channel():
		var state models.StateResponse
		if err := json.Unmarshal([]byte(msg.Payload), &state); err != nil {
			t.Fatalf("Failed to decode published state: %v", err)
		}
		if state.Balance != 1234.5 {
			t.Errorf("Expected balance 1234.5, got %v", state.Balance)
		}
		if state.History == nil {
			t.Error("Published history should be an empty list, not null")
		}
	case <-ctx.Done():
		t.Fatal("Timed out waiting for published state")
	}
}
