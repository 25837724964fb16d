// Package redis provides the shared Redis client, the read-through cache and
// the distributed mutex used to serialize per-job-seeker writes.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/turtacn/TalentMatch-AI/internal/config"
	appErrors "github.com/turtacn/TalentMatch-AI/pkg/errors"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCodeCacheError, "redis ping failed")
	}
	return client, nil
}
