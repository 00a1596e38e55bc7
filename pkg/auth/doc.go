// Package auth implements the credential and token lifecycle for the platform.
//
// # Overview
//
// This package contains password hashing (bcrypt), password-strength policy,
// signed access/refresh token issuance and verification (JWT, HS256), and the
// authorization gate that turns a raw token into an authenticated *User with
// live account state and derived scopes.
//
// # Tokens
//
// Access tokens are short-lived (default 30m) and carry the user's scopes.
// Refresh tokens are long-lived (default 7d) and can only mint new tokens.
// Both are stateless: validity is purely signature + expiry, and rotation on
// refresh does not blacklist the previous token. There is deliberately no
// revocation list; expiry is the only lifecycle end.
//
// # Scopes
//
// Scopes are never persisted. They are recomputed from the user's IsAdmin
// flag at issuance and at every check via RoleOf/ScopesOf, so deactivating or
// demoting a user takes effect on the next request even while old tokens are
// still unexpired.
//
// # Authorization Flow
//
//	svc := auth.NewService(store, issuer, hasher, logger)
//	user, err := svc.Authenticate(ctx, rawToken, auth.ScopeMaterialsRead)
//	switch {
//	case errors.Is(err, auth.ErrUnauthenticated): // 401
//	case errors.Is(err, auth.ErrForbidden):       // 403
//	case errors.Is(err, auth.ErrUserNotFound):    // 404
//	}
//
// # Related Packages
//
//   - pkg/middleware: HTTP authentication middleware over this package
//   - pkg/storage: UserStore implementations
package auth
