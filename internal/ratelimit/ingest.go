package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/meterdash/internal/config"
)

const keyIngestCustomer = "ingest:customer:%s"

// IngestLimiter throttles usage-event ingestion per customer. A nil limiter
// is valid and allows everything, which is how deployments without redis run.
type IngestLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewIngestLimiter(cfg config.Config) (*IngestLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.IngestRate <= 0 || limitCfg.IngestBurst <= 0 {
		return nil, errors.New("ingest rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
		DB:       limitCfg.RedisDB,
	})

	return &IngestLimiter{
		bucket: NewTokenBucket(client),
		rate:   limitCfg.IngestRate,
		burst:  limitCfg.IngestBurst,
	}, nil
}

func (l *IngestLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *IngestLimiter) Allow(ctx context.Context, customerID string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyIngestCustomer, strings.TrimSpace(customerID)), l.rate, l.burst)
}

// RateLimitedError carries the retry hint for a denied request.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return "rate_limited"
}

func AsRateLimited(err error) (*RateLimitedError, bool) {
	var rl *RateLimitedError
	if errors.As(err, &rl) {
		return rl, true
	}
	return nil, false
}
