package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dicebank-backend/internal/config"
	"dicebank-backend/internal/models"
)

// RateLimiter counts actions per key inside a fixed window.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key, action string, limit int, window time.Duration) (bool, error)
}

// RedisService backs bet rate limiting and publishes bankroll changes on a
// pub/sub channel for consumers outside this process. Nothing authoritative
// is stored in Redis.
type RedisService struct {
	client    *redis.Client
	logger    *zap.Logger
	publisher *QueuedBroadcaster
}

// redisPublisher publishes synchronously. It only runs on the
// QueuedBroadcaster goroutine.
type redisPublisher struct {
	s *RedisService
}

func (p redisPublisher) BroadcastState(state models.BankrollState) {
	ctx, cancel := context.WithTimeout(context.Background(), redisPublishTimeout)
	defer cancel()

	if err := p.s.PublishState(ctx, state); err != nil {
		p.s.logger.Warn("failed to publish bankroll state", zap.Error(err))
	}
}

func NewRedisService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	s := &RedisService{
		client: client,
		logger: logger,
	}
	s.publisher = NewQueuedBroadcaster(redisPublisher{s: s}, redisPublishQueueSize, logger)
	return s, nil
}

func (s *RedisService) Close() error {
	s.publisher.Close()
	return s.client.Close()
}

func (s *RedisService) CheckRateLimit(ctx context.Context, key, action string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf(KeyRateLimit, key, action)

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count <= int64(limit), nil
}

func (s *RedisService) ClearRateLimit(ctx context.Context, key, action string) error {
	return s.client.Del(ctx, fmt.Sprintf(KeyRateLimit, key, action)).Err()
}

// BroadcastState queues the state for publishing on ChannelBankroll and
// returns without waiting for Redis.
func (s *RedisService) BroadcastState(state models.BankrollState) {
	s.publisher.BroadcastState(state)
}

func (s *RedisService) PublishState(ctx context.Context, state models.BankrollState) error {
	data, err := json.Marshal(models.NewStateResponse(state))
	if err != nil {
		return fmt.Errorf("failed to marshal bankroll state: %w", err)
	}

	if err := s.client.Publish(ctx, ChannelBankroll, data).Err(); err != nil {
		return fmt.Errorf("failed to publish bankroll state: %w", err)
	}
	return nil
}
