package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis from REDIS_URL, or REDIS_ADDR when no URL
// is set. It returns nil when Redis is unreachable, and callers then run
// without a cache.
func NewRedisClient(cfg *Config, logger *zap.Logger) *redis.Client {
	var opt *redis.Options
	if cfg.RedisURL != "" {
		parsedOpt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("Failed to parse Redis URL, running without cache", zap.Error(err))
			return nil
		}
		opt = parsedOpt
	} else if cfg.RedisAddr != "" {
		opt = &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		}
	} else {
		logger.Info("Redis not configured, running without cache")
		return nil
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis connection failed, running without cache", zap.Error(err))
		client.Close()
		return nil
	}

	logger.Info("Redis connected", zap.String("addr", opt.Addr))
	return client
}
