// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"github.com/zanegreyy/zanos/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the generic cache client. It fronts upstream lookups
// (airport autosuggest, flight searches) and is optional: when Redis is
// unreachable the services fall back to uncached calls.
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client (using DB from AppConfig).
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis cache unreachable, continuing without cache", zap.Error(err))
		CacheClient = nil
	}
}

// GetCacheClient returns the generic cache client, which may be nil when
// Redis was not reachable at startup.
func GetCacheClient() *redis.Client {
	return CacheClient
}
