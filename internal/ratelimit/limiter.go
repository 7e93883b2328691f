package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// MetadataKey is the key used to attach an EndpointConfig to a huma
// operation's Metadata.
const MetadataKey = "rateLimit"

// LimitConfig is a single sliding-window limit.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// EndpointConfig is per-endpoint rate limit configuration carried in
// operation metadata.
type EndpointConfig struct {
	// Limits overrides the limiter's defaults for this endpoint.
	Limits []LimitConfig

	// Disabled skips rate limiting entirely for this endpoint.
	Disabled bool
}

// Store defines the interface for rate limit data storage.
type Store interface {
	// Record records a request under key and returns the request count in
	// the current window, pruning expired entries.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

// LimitExceeded describes which limit was hit.
type LimitExceeded struct {
	Config LimitConfig
	Count  int64
}

// Limiter enforces sliding-window limits against a Store.
type Limiter struct {
	store    Store
	defaults []LimitConfig
}

// NewLimiter creates a limiter with the default limits applied to endpoints
// that carry no configuration of their own.
func NewLimiter(store Store, defaults []LimitConfig) *Limiter {
	return &Limiter{
		store:    store,
		defaults: defaults,
	}
}

// Allow checks the given limits (the defaults when limits is empty) for the
// client key. The LimitExceeded return value is nil when allowed.
func (l *Limiter) Allow(ctx context.Context, clientKey string, limits []LimitConfig) (bool, *LimitExceeded, error) {
	if len(limits) == 0 {
		limits = l.defaults
	}

	for _, limit := range limits {
		// Window is part of the key so each limit is tracked independently.
		key := fmt.Sprintf("%s:%d", clientKey, limit.Window.Milliseconds())

		count, err := l.store.Record(ctx, key, limit.Window)
		if err != nil {
			return false, nil, err
		}

		if count > limit.Max {
			return false, &LimitExceeded{Config: limit, Count: count}, nil
		}
	}

	return true, nil, nil
}
