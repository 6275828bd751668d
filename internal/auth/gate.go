package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Paths that are served regardless of session state.
var exempt = map[string]bool{
	"/healthz": true,
}

// Decision is the outcome of route authorization. RedirectTo is set when
// Allow is false.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Authorized decides whether a request for path may proceed. The dashboard
// subtree needs a session; signed-in users are sent from every other entry
// point to the dashboard.
func Authorized(path string, loggedIn bool) Decision {
	if exempt[path] {
		return Decision{Allow: true}
	}

	if path == DashboardPath || strings.HasPrefix(path, DashboardPath+"/") {
		if loggedIn {
			return Decision{Allow: true}
		}

		return Decision{RedirectTo: LoginPath + "?" + url.Values{"callbackUrl": {path}}.Encode()}
	}

	if loggedIn {
		return Decision{RedirectTo: DashboardPath}
	}

	return Decision{Allow: true}
}

type claimsKey struct{}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFrom returns the session claims of the current request, if any.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok && c != nil
}

// Gate resolves the session cookie and applies Authorized to every request.
func Gate(sessions *Sessions, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var claims *Claims

			if cookie, err := r.Cookie(cookieName); err == nil {
				if c, err := sessions.Verify(cookie.Value); err == nil {
					claims = c
				}
			}

			d := Authorized(r.URL.Path, claims != nil)
			if !d.Allow {
				http.Redirect(w, r, d.RedirectTo, http.StatusFound)
				return
			}

			if claims != nil {
				r = r.WithContext(WithClaims(r.Context(), claims))
			}

			next.ServeHTTP(w, r)
		})
	}
}
