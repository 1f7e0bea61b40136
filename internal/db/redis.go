package db

import (
	"context"
	"time"

	"design-studio/backend/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a pooled Redis client and pings it once.
func NewRedisClient(ctx context.Context, addr, password string, db int) *redis.Client {
	logging.Info("Initializing Redis client", "addr", addr, "db", db)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		logging.Warn("Failed to ping Redis", "error", err.Error())
		return client // Still return the client, connection pool will try to reconnect
	}

	logging.Info("Successfully connected to Redis")
	return client
}
