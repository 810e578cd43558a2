package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisMu     sync.Mutex
)

// ConnectRedis initializes the shared Redis client from environment variables.
// Redis is opt-in: unless REDIS_ENABLED=true the client stays nil and every
// Redis-backed feature (session cache, rate limiter) degrades to the database
// or to a no-op. Returns the client (possibly nil) and a connection error.
func ConnectRedis() (*redis.Client, error) {
	redisMu.Lock()
	defer redisMu.Unlock()

	if os.Getenv("REDIS_ENABLED") != "true" {
		redisClient = nil
		return nil, nil
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	pass := os.Getenv("REDIS_PASSWORD")
	dbNum := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if v, err := strconv.Atoi(dbStr); err == nil {
			dbNum = v
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		redisClient = nil
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	redisClient = rdb
	log.Printf("Connected to Redis at %s", addr)
	return redisClient, nil
}

// GetRedisClient returns the shared Redis client, or nil when Redis is
// disabled or the connection failed.
func GetRedisClient() *redis.Client {
	redisMu.Lock()
	defer redisMu.Unlock()
	return redisClient
}
