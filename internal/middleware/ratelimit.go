package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/thdgm/urlshortener/internal/handlers"
	"github.com/thdgm/urlshortener/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimiter returns a huma middleware enforcing sliding-window limits per
// client. Endpoints configure their limits through operation metadata; an
// endpoint without metadata gets the limiter's defaults.
func RateLimiter(api huma.API, limiter *ratelimit.Limiter, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := endpointConfig(ctx)
		if cfg != nil && cfg.Disabled {
			next(ctx)

			return
		}

		var limits []ratelimit.LimitConfig
		if cfg != nil {
			limits = cfg.Limits
		}

		key := clientKey(ctx)

		allowed, exceeded, err := limiter.Allow(ctx.Context(), key, limits)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !allowed {
			logger.Warn("rate limit exceeded",
				zap.String("path", ctx.URL().Path),
				zap.Int64("count", exceeded.Count),
				zap.Int64("max", exceeded.Config.Max),
				zap.Duration("window", exceeded.Config.Window),
			)

			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")

			return
		}

		next(ctx)
	}
}

// endpointConfig extracts the rate limit config from operation metadata.
func endpointConfig(ctx huma.Context) *ratelimit.EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[ratelimit.MetadataKey].(ratelimit.EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}

// clientKey derives a per-client key from IP, user-agent, and path so each
// endpoint's limits are counted separately.
func clientKey(ctx huma.Context) string {
	meta := handlers.RequestMetaFromContext(ctx.Context())

	h := sha256.Sum256([]byte(meta.ClientIP + "|" + meta.UserAgent))

	return hex.EncodeToString(h[:16]) + ":" + ctx.URL().Path
}
