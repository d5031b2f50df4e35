package middleware

import (
	"net/http"
	"strings"
	"time"

	goUX "github.com/MrEthical07/goUX"
	"github.com/google/uuid"
)

// DefaultVisitorCookie is used when Visitor is given an empty name.
const DefaultVisitorCookie = "goux_vid"

const visitorCookieMaxAge = 365 * 24 * time.Hour

// Visitor identifies the browser behind each request. An existing cookie is
// reused; otherwise a random UUID is issued. The id is stored in the request
// context for goUX.VisitorIDFromContext.
func Visitor(cookieName string) func(http.Handler) http.Handler {
	if strings.TrimSpace(cookieName) == "" {
		cookieName = DefaultVisitorCookie
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := visitorCookie(r, cookieName)
			if !ok {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   int(visitorCookieMaxAge / time.Second),
					HttpOnly: true,
					Secure:   r.TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := goUX.WithVisitorID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func visitorCookie(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}
