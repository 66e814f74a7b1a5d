// internal/ratelimit/redis.go
package ratelimit

import (
	"context"

	"github.com/redis/go-redis/v9"

	"template-forge/internal/common/logger"
)

// Redis is a fixed-window limiter backed by a shared Redis instance, for
// deployments running more than one server process. The counter is an INCR
// per window key; the key expiry is set only on the first hit of a window so
// the window boundary stays fixed.
type Redis struct {
	client *redis.Client
	cfg    Config
	prefix string
	logger logger.Logger
}

func NewRedis(client *redis.Client, cfg Config, operation string, log logger.Logger) *Redis {
	return &Redis{
		client: client,
		cfg:    cfg,
		prefix: "ratelimit:" + operation + ":",
		logger: log.WithFields(map[string]interface{}{"component": "ratelimit", "operation": operation}),
	}
}

func (r *Redis) Allow(ctx context.Context, identifier string) (bool, error) {
	key := r.prefix + identifier

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		// Fail open: a limiter outage must not take the service down.
		r.logger.Warn("rate limit store unavailable, admitting request", map[string]interface{}{
			"error": err.Error(),
		})
		return true, nil
	}

	if count == 1 {
		if err := r.client.PExpire(ctx, key, r.cfg.Window).Err(); err != nil {
			r.logger.Warn("failed to set rate limit window expiry", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return count <= int64(r.cfg.MaxRequests), nil
}
