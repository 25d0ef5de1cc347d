package services

import "time"

const (
	KeyRateLimit    = "dicebank:ratelimit:%s:%s"
	ChannelBankroll = "dicebank:bankroll"

	DefaultRateLimitWindow = time.Minute

	redisPublishTimeout   = 2 * time.Second
	redisPublishQueueSize = 64
)
