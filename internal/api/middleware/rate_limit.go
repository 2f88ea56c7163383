package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/trampo-app/trampo/internal/pkg/errors"
	"github.com/trampo-app/trampo/internal/pkg/logger"
	"github.com/trampo-app/trampo/internal/pkg/metrics"
	"github.com/trampo-app/trampo/internal/pkg/utils"
	"github.com/trampo-app/trampo/internal/ratelimit"
)

// RateLimit returns a middleware that allows limit requests per window for
// each client. Authenticated requests are keyed by user, anonymous ones by IP.
// Requests are let through when the store is unavailable.
func RateLimit(store ratelimit.Store, scope string, limit int, window time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := scope + ":" + clientKey(r)

			res, err := store.Allow(r.Context(), key, limit, window)
			if err != nil {
				log.WithError(err).Warn("Rate limit store unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				metrics.RecordRateLimited(store.Name())
				retry := int(math.Ceil(res.RetryAfter.Seconds()))
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				utils.WriteError(w, errors.RateLimited("Too many requests. Please try again later."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := GetUserID(r); ok {
		return "user:" + userID
	}
	return "ip:" + GetClientIP(r)
}
