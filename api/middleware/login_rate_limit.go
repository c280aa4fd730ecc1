package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/wishboard/wishboard-backend/api/responses"
	"github.com/wishboard/wishboard-backend/pkg/config"
	pkgerrors "github.com/wishboard/wishboard-backend/pkg/errors"
	"github.com/wishboard/wishboard-backend/pkg/logger"
)

// LoginRateLimitStore is the counter backend; the redis client satisfies it.
type LoginRateLimitStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// LoginRateLimitPolicy defines per-IP throttling for the login endpoint.
type LoginRateLimitPolicy struct {
	window  time.Duration
	ipLimit int
}

func NewLoginRateLimitPolicy(cfg config.RateLimitConfig) LoginRateLimitPolicy {
	return LoginRateLimitPolicy{
		window:  cfg.LoginWindow,
		ipLimit: cfg.LoginIPLimit,
	}
}

func (p LoginRateLimitPolicy) enabled() bool {
	return p.window > 0 && p.ipLimit > 0
}

func (p LoginRateLimitPolicy) ipKey(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("rl:ip:login:%s", ip)
}

// LoginRateLimit throttles repeated credential attempts per client IP. A nil
// store disables the limiter entirely.
func LoginRateLimit(policy LoginRateLimitPolicy, store LoginRateLimitStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			key := policy.ipKey(ip)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			count, err := store.IncrWithTTL(ctx, key, policy.window)
			if err != nil {
				// Redis being down must not lock out the admin.
				if logg != nil {
					logg.Warn(ctx, "login.rate_limit.unavailable")
				}
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(policy.ipLimit) {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"ip":             ip,
						"attempts":       count,
						"limit":          policy.ipLimit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "login.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
