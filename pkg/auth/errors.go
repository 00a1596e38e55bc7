package auth

import "errors"

// Token verification errors.
var (
	// ErrTokenInvalid is returned for malformed tokens or bad signatures.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired is returned when the exp claim has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenWrongType is returned when a refresh token is presented where an
	// access token is required, or vice versa.
	ErrTokenWrongType = errors.New("wrong token type")
)

// Authorization gate errors. The API layer maps these to HTTP status codes.
var (
	// ErrUnauthenticated covers missing, invalid, and expired credentials (401).
	ErrUnauthenticated = errors.New("could not validate credentials")
	// ErrForbidden covers inactive accounts and missing scopes (403).
	ErrForbidden = errors.New("insufficient permissions")
	// ErrUserInactive is returned when the account exists but is deactivated.
	ErrUserInactive = errors.New("inactive user")
	// ErrUserNotFound is returned when token claims no longer resolve to a record.
	ErrUserNotFound = errors.New("user not found")
)

// Credential and registration errors.
var (
	// ErrBadCredentials is returned on login with an unknown email or wrong
	// password. The two cases are deliberately indistinguishable.
	ErrBadCredentials = errors.New("incorrect email or password")
	// ErrEmailTaken is returned on signup with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
)
