package middleware

import (
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"vet-medication-reference/internal/platform/httpjson"
)

// RateLimit aplica un token bucket global. l nil = sin límite.
func RateLimit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				retry := time.Duration(float64(time.Second) / float64(l.Limit()))
				w.Header().Set("Retry-After", strconv.Itoa(max(1, int(retry.Seconds()))))
				httpjson.Write(w, http.StatusTooManyRequests, httpjson.ErrorResponse{
					Error: "too many requests",
					Code:  "rate_limited",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewLimiter: rps <= 0 desactiva el límite.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
