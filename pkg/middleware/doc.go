// Package middleware provides authentication and authorization middleware.
//
// # Overview
//
// The Authenticator guards protected routes. It extracts the access token
// from the Authorization header or the access_token cookie, validates it
// through the auth service, and injects the resulting AuthContext into the
// request context where handlers retrieve it with GetAuthContext.
//
// # Token Sources
//
// Browser clients carry tokens in HttpOnly cookies set by the login
// endpoint; API clients send "Authorization: Bearer <token>". The header
// wins when both are present.
//
// # Scope Enforcement
//
// Scopes are recomputed from the live user record on every request, so a
// role change takes effect on the next request rather than at the next
// token refresh. Routes declare their requirements at registration time:
//
//	protected := authn.Middleware(auth.ScopeMaterialsRead)
//	adminOnly := authn.Middleware(auth.ScopeAdmin)
//
// # Error Mapping
//
// Failures answer with the standard detail body: 401 for missing or
// invalid tokens, 403 for inactive accounts and missing scopes.
//
// # Related Packages
//
//   - pkg/auth: Token verification and the authorization gate
//   - pkg/contextkeys: Context keys used to carry the AuthContext
package middleware
