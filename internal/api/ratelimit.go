package api

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewRateLimiter builds an in-memory per-client limiter from a formatted rate such as "120-M".
// An empty rate returns nil.
func NewRateLimiter(formatted string) (*limiter.Limiter, error) {
	if formatted == "" {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit rejects clients over their quota with 429.
func RateLimit(limiterInstance *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			lctx, err := limiterInstance.Get(r.Context(), ip)
			if err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{"ip": ip}).Error("Failed to get rate limit context")
				writeJSONError(w, http.StatusInternalServerError, "internal server error during rate limit check")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				logrus.WithFields(logrus.Fields{"ip": ip, "limit": lctx.Limit}).Warn("Rate limit exceeded")
				writeJSONError(w, http.StatusTooManyRequests, "too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSONError(w http.ResponseWriter, statusCode int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
