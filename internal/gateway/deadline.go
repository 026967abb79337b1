package gateway

import (
	"context"
	"net/http"
	"time"
)

// Deadline bounds every request context by timeout. Storage calls that overrun
// it fail with context.DeadlineExceeded and are answered through the envelope
// like any other component error.
func Deadline(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
