package middleware

import (
	"context"
	"net/http"
	"time"
)

// Deadline bounds each request's context to d. Handlers observe it through
// r.Context(); nothing is written on their behalf. d <= 0 disables it.
func Deadline(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
