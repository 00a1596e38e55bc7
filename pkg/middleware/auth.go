package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/edustack/platform/pkg/auth"
	"github.com/edustack/platform/pkg/contextkeys"
	"github.com/edustack/platform/pkg/httputil"
	"github.com/edustack/platform/pkg/observability"
)

// AccessTokenCookie is the cookie carrying the access token for browser
// clients. API clients use the Authorization header instead.
const AccessTokenCookie = "access_token"

// Authenticator guards protected routes
type Authenticator struct {
	svc     *auth.Service
	logger  *observability.Logger
	metrics *observability.Metrics
}

// NewAuthenticator creates authentication middleware over the auth service.
// metrics may be nil.
func NewAuthenticator(svc *auth.Service, logger *observability.Logger, metrics *observability.Metrics) *Authenticator {
	return &Authenticator{
		svc:     svc,
		logger:  logger.WithField("component", "auth_middleware"),
		metrics: metrics,
	}
}

// TokenFromRequest extracts the access token from the Authorization header,
// falling back to the access_token cookie. Returns "" when neither is set.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return header
	}
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Middleware returns a handler wrapper that authenticates the request and
// enforces the given scopes. The resolved user and scopes are stored in the
// request context.
func (a *Authenticator) Middleware(required ...auth.Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				a.recordFailure("missing_token")
				unauthorized(w)
				return
			}

			user, err := a.svc.Authenticate(r.Context(), token, required...)
			if err != nil {
				a.logger.WithError(err).WithField("path", r.URL.Path).Debug("Authentication failed")
				a.recordFailure(failureReason(err))
				writeAuthError(w, err)
				return
			}

			authCtx := &auth.AuthContext{
				User:   user,
				Scopes: auth.ScopesOf(auth.RoleOf(user)),
			}
			ctx := contextkeys.WithAuth(r.Context(), authCtx)
			ctx = contextkeys.WithUserID(ctx, strconv.FormatInt(user.ID, 10))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAuthContext extracts the auth context from the request, or nil when
// the request did not pass through the Authenticator
func GetAuthContext(r *http.Request) *auth.AuthContext {
	val := r.Context().Value(contextkeys.AuthKey)
	if val == nil {
		return nil
	}
	authCtx, ok := val.(*auth.AuthContext)
	if !ok {
		return nil
	}
	return authCtx
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUserInactive):
		httputil.WriteForbidden(w, "Inactive user")
	case errors.Is(err, auth.ErrForbidden):
		httputil.WriteForbidden(w, "Insufficient permissions")
	default:
		unauthorized(w)
	}
}

func (a *Authenticator) recordFailure(reason string) {
	if a.metrics != nil {
		a.metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrUserInactive):
		return "inactive"
	case errors.Is(err, auth.ErrForbidden):
		return "forbidden"
	case errors.Is(err, auth.ErrUserNotFound):
		return "user_not_found"
	default:
		return "invalid_token"
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	httputil.WriteUnauthorized(w, "Could not validate credentials")
}
