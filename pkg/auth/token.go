package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type discriminators carried in the token_type claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Default token lifetimes.
const (
	DefaultAccessTTL  = 30 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Claims are the signed assertions carried by both token kinds. Scopes are
// present on access tokens only and are advisory: the authorization gate
// re-derives effective scopes from live user state.
type Claims struct {
	Email     string  `json:"email"`
	Scopes    []Scope `json:"scopes,omitempty"`
	TokenType string  `json:"token_type"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim parsed as a user ID.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return id, nil
}

// TokenIssuer creates and validates signed, time-limited tokens. The signing
// secret is process-wide configuration, read-only after startup.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenIssuer creates a TokenIssuer. Zero TTLs fall back to the defaults.
func NewTokenIssuer(secret, issuer string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// AccessTTL returns the configured access token lifetime.
func (ti *TokenIssuer) AccessTTL() time.Duration { return ti.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (ti *TokenIssuer) RefreshTTL() time.Duration { return ti.refreshTTL }

// IssueAccess encodes a signed access token expiring at now + access TTL.
func (ti *TokenIssuer) IssueAccess(userID int64, email string, scopes []Scope) (string, error) {
	return ti.sign(userID, email, scopes, TokenTypeAccess, ti.accessTTL)
}

// IssueRefresh encodes a signed refresh token expiring at now + refresh TTL.
// Refresh tokens carry no scopes; they can only mint new tokens.
func (ti *TokenIssuer) IssueRefresh(userID int64, email string) (string, error) {
	return ti.sign(userID, email, nil, TokenTypeRefresh, ti.refreshTTL)
}

func (ti *TokenIssuer) sign(userID int64, email string, scopes []Scope, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     email,
		Scopes:    scopes,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ti.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// Verify decodes and checks signature and expiry. Expiry comparison is strict;
// no clock skew is tolerated.
func (ti *TokenIssuer) Verify(raw string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return ti.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// VerifyAccess verifies raw and requires the access discriminator.
func (ti *TokenIssuer) VerifyAccess(raw string) (*Claims, error) {
	return ti.verifyType(raw, TokenTypeAccess)
}

// VerifyRefresh verifies raw and requires the refresh discriminator.
func (ti *TokenIssuer) VerifyRefresh(raw string) (*Claims, error) {
	return ti.verifyType(raw, TokenTypeRefresh)
}

func (ti *TokenIssuer) verifyType(raw, want string) (*Claims, error) {
	claims, err := ti.Verify(raw)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != want {
		return nil, ErrTokenWrongType
	}
	return claims, nil
}
