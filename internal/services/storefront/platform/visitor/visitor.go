// Package visitor issues and resolves the anonymous visitor cookie that
// keys a browser's persisted cart.
package visitor

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/storefront/internal/platform/id"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
)

// CookieName is the visitor cookie.
const CookieName = "sf_visitor"

const cookieMaxAge = 400 * 24 * time.Hour

type contextKey struct{}

// Read returns the visitor id from the request cookie when well formed.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if !id.Valid(value) {
		return "", false
	}
	return value, true
}

// Write sets the visitor cookie.
func Write(w http.ResponseWriter, r *http.Request, visitorID string, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    strings.TrimSpace(visitorID),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Middleware makes sure every request carries a visitor id, issuing a new
// cookie when the request has none or a malformed one.
func Middleware(policy requestmeta.SchemePolicy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID, ok := Read(r)
			if !ok {
				generated, err := id.NewID()
				if err != nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				visitorID = generated
				Write(w, r, visitorID, policy)
			}
			next.ServeHTTP(w, r.WithContext(WithID(r.Context(), visitorID)))
		})
	}
}

// WithID stores visitorID on ctx.
func WithID(ctx context.Context, visitorID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, visitorID)
}

// FromContext returns the visitor id stored by Middleware.
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	visitorID, ok := ctx.Value(contextKey{}).(string)
	if !ok || visitorID == "" {
		return "", false
	}
	return visitorID, true
}
