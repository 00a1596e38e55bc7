package api

import (
	"net/http"
	"time"

	"github.com/edustack/platform/pkg/auth"
	"github.com/edustack/platform/pkg/middleware"
)

// RefreshTokenCookie carries the refresh token. Scoped to the whole site
// because the refresh endpoint lives under /api/auth and the cookie also
// has to clear cleanly from /.
const RefreshTokenCookie = "refresh_token"

// setAuthCookies installs both tokens as HttpOnly cookies. SameSite=Lax
// keeps them off cross-site requests while still surviving top-level
// navigation from an external link.
func (s *Server) setAuthCookies(w http.ResponseWriter, pair auth.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(s.authSvc.Tokens().AccessTTL().Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(s.authSvc.Tokens().RefreshTTL().Seconds()),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookies expires both token cookies
func (s *Server) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{middleware.AccessTokenCookie, RefreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   s.cookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
