// Package redis connects to the Redis server that holds preview drafts and idempotency keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/at-ishikawa/flashnote/internal/config"
	"github.com/at-ishikawa/flashnote/internal/logger"
)

// warn about failed pings until this many attempts, then escalate to errors
const warnAttempts = 3

var ErrNotConfigured = errors.New("redis address is not configured")

type backoff struct {
	initial     time.Duration
	max         time.Duration
	pingTimeout time.Duration
	total       time.Duration
}

func backoffFrom(cfg config.RedisConfig) (backoff, error) {
	b := backoff{
		initial:     cfg.RetryInterval,
		max:         cfg.MaxWait,
		pingTimeout: cfg.PingTimeout,
		total:       cfg.ConnectTimeout,
	}
	switch {
	case b.total <= 0:
		return b, fmt.Errorf("connect_timeout must be > 0, got %v", b.total)
	case b.initial <= 0:
		return b, fmt.Errorf("retry_interval must be > 0, got %v", b.initial)
	case b.max <= 0:
		return b, fmt.Errorf("max_wait must be > 0, got %v", b.max)
	case b.pingTimeout <= 0:
		return b, fmt.Errorf("ping_timeout must be > 0, got %v", b.pingTimeout)
	}
	return b, nil
}

// Connect creates a client and pings the server until it answers or connect_timeout elapses.
// The wait between pings doubles up to max_wait.
func Connect(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, ErrNotConfigured
	}
	b, err := backoffFrom(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid redis config: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if err := ping(ctx, client, cfg.Addr, b, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func ping(ctx context.Context, client *redis.Client, addr string, b backoff, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, b.total)
	defer cancel()

	log.Info("connecting to redis", logger.String("addr", addr), logger.Duration("timeout", b.total))
	start := time.Now()
	wait := b.initial
	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, b.pingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()
		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry",
					logger.String("addr", addr),
					logger.Int("attempts", attempt),
					logger.Duration("elapsed", time.Since(start)))
			} else {
				log.Info("connected to redis", logger.String("addr", addr))
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("redis unavailable",
				logger.String("addr", addr),
				logger.Int("attempts", attempt),
				logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts: %w", addr, attempt, err)
		case <-timer.C:
		}

		fields := []logger.Field{
			logger.String("addr", addr),
			logger.Int("attempt", attempt),
			logger.Duration("next_retry_in", wait),
			logger.Error(err),
		}
		if attempt <= warnAttempts {
			log.Warn("redis connection failed, retrying", fields...)
		} else {
			log.Error("redis still unavailable, retrying", fields...)
		}

		wait *= 2
		if wait > b.max {
			wait = b.max
		}
	}
}
