package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AvalonleFae/ezevent/config"
)

var redisClient *redis.Client

// InitRedis connects the shared Redis client used for reset tokens and scan locks
func InitRedis(cfg *config.Config) error {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	log.Println("✅ Redis connected")
	return nil
}

// SetToken stores a value with TTL (password reset tokens)
func SetToken(key, value string, ttl time.Duration) error {
	return redisClient.Set(context.Background(), key, value, ttl).Err()
}

// GetToken fetches a token value; returns an error when missing or expired
func GetToken(key string) (string, error) {
	return redisClient.Get(context.Background(), key).Result()
}

// DeleteToken removes a token after use
func DeleteToken(key string) error {
	return redisClient.Del(context.Background(), key).Err()
}

// AcquireLock takes a short-lived lock (SETNX). Returns false when the lock
// is already held, which callers treat as "an identical attempt is in flight".
func AcquireLock(key string, ttl time.Duration) (bool, error) {
	if redisClient == nil {
		return false, fmt.Errorf("redis not initialized")
	}
	return redisClient.SetNX(context.Background(), key, "1", ttl).Result()
}

// ReleaseLock drops a lock early once the guarded operation settles
func ReleaseLock(key string) {
	if redisClient == nil {
		return
	}
	_ = redisClient.Del(context.Background(), key).Err()
}
