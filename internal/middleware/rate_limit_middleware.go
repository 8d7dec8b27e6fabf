package middleware

import (
	"CommunityReportAPI/internal/config"
	"CommunityReportAPI/internal/helper"
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"
)

// Limiter is satisfied by the Redis counter and the in-process token bucket.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

// RateLimitMiddleware throttles anonymous write endpoints (report intake,
// comments, photo uploads) per client address.
type RateLimitMiddleware struct {
	limiter Limiter
	clients clientIPResolver
}

func NewRateLimitMiddleware(limiter Limiter, cfg *config.AppConfig) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		clients: newClientIPResolver(cfg.TrustedProxyCIDRs),
	}
}

// Limit allows perWindow requests per client in every window for the named
// scope. A zero budget or a missing limiter disables the check.
func (m *RateLimitMiddleware) Limit(scope string, perWindow int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil || m.limiter == nil || perWindow <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := m.clients.resolve(r)

			allowed, wait, err := m.limiter.Allow(r.Context(), limitKey(scope, client), perWindow, window)
			if err != nil {
				slog.Error("Rate limiter unavailable", "scope", scope, "error", err)
				helper.WriteError(w, helper.NewServiceUnavailableError("Submissions are temporarily unavailable, please retry shortly"))
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(perWindow))
			h.Set("X-RateLimit-Reset", strconv.Itoa(int(wait.Seconds())))

			if !allowed {
				slog.Warn("Rate limit reached", "scope", scope, "client", client)
				h.Set("X-RateLimit-Remaining", "0")
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				helper.WriteError(w, helper.NewTooManyRequestsError("Too many "+scope+" from this address, please try again later"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func limitKey(scope, client string) string {
	return "ratelimit:" + scope + ":" + client
}
