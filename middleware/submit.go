package middleware

import (
	"math"
	"net/http"
	"strconv"

	goUX "github.com/MrEthical07/goUX"
	"github.com/MrEthical07/goUX/guard"
)

// KeyFunc derives the submission key for a request. An empty key skips the
// guard.
type KeyFunc func(r *http.Request) string

// VisitorPathKey keys submissions by visitor id and path. Requests without a
// visitor id are not guarded.
func VisitorPathKey(r *http.Request) string {
	id, ok := goUX.VisitorIDFromContext(r.Context())
	if !ok {
		return ""
	}
	return id + ":" + r.URL.Path
}

// SubmitGuard rejects a repeated POST with the same key inside the guard's
// cooldown with 429 Too Many Requests. Other methods pass through. When the
// guard backend is unreachable the request is let through.
func SubmitGuard(rg *guard.RedisGuard, keyFn KeyFunc) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = VisitorPathKey
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rg == nil || r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			key := keyFn(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			decision, err := rg.Acquire(r.Context(), key)
			if err != nil || decision == guard.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			if remaining, err := rg.Remaining(r.Context(), key); err == nil && remaining > 0 {
				secs := int(math.Ceil(remaining.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(secs))
			}
			http.Error(w, "duplicate submission", http.StatusTooManyRequests)
		})
	}
}
