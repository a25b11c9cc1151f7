package api

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/foldnote/foldnote-server/internal/http/response"
	"github.com/foldnote/foldnote-server/internal/logger"
	"github.com/foldnote/foldnote-server/internal/metrics"
	"github.com/foldnote/foldnote-server/internal/ratelimit"
)

// RateLimitMiddleware limits /api requests per client IP.
// Returns 429 Too Many Requests with Retry-After when the limit is exceeded.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, m *metrics.Metrics, fallback *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}

			key := clientIP(r)
			ok, retryAfter := limiter.Allow(key)
			if !ok {
				if m != nil {
					m.RateLimited()
				}
				logger.FromContext(r.Context(), fallback).Warn("rate limit exceeded",
					"ip", key,
					"path", r.URL.Path,
				)
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				response.TooManyRequests(w, "too many requests, please try again later", fallback)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr, which middleware.RealIP has
// already replaced with the forwarded address when one was sent.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
