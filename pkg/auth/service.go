package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edustack/platform/pkg/observability"
)

// UserStore is the data-store collaborator the authorization gate depends on.
// Lookups return (nil, nil) when no record matches; errors are reserved for
// store failures. CreateUser returns ErrEmailTaken for duplicate emails.
type UserStore interface {
	CreateUser(ctx context.Context, email, hashedPassword string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// Service is the authorization gate. It resolves raw tokens into authenticated
// users, enforces active-account and scope requirements, and owns the signup,
// login, and refresh flows.
//
// All operations are request-scoped and stateless between requests. The only
// shared state is the signing secret inside the TokenIssuer, read-only after
// startup.
type Service struct {
	users  UserStore
	tokens *TokenIssuer
	hasher *Hasher
	logger *observability.Logger
}

// NewService creates the authorization gate.
func NewService(users UserStore, tokens *TokenIssuer, hasher *Hasher, logger *observability.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger.WithField("component", "auth"),
	}
}

// Tokens exposes the token issuer for boundary code that needs TTLs.
func (s *Service) Tokens() *TokenIssuer { return s.tokens }

// Authenticate resolves a raw bearer token (with optional "Bearer " prefix)
// into a user. The user record is read from the store so that deactivation
// takes effect immediately, regardless of what the token claims say. If
// required scopes are given, the caller's scope set is recomputed from the
// live admin flag and each one must be present.
func (s *Service) Authenticate(ctx context.Context, rawToken string, required ...Scope) (*User, error) {
	rawToken = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rawToken), "Bearer"))
	if rawToken == "" {
		return nil, fmt.Errorf("%w: missing token", ErrUnauthenticated)
	}

	claims, err := s.tokens.VerifyAccess(rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := s.users.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if len(required) > 0 {
		granted := &AuthContext{User: user, Scopes: ScopesOf(RoleOf(user))}
		for _, scope := range required {
			if !granted.HasScope(scope) {
				return nil, fmt.Errorf("%w: missing scope %q", ErrForbidden, scope)
			}
		}
	}

	return user, nil
}

// RequireActive re-reads the user record to guard against stale claims, e.g.
// an account deactivated after token issuance.
func (s *Service) RequireActive(ctx context.Context, user *User) (*User, error) {
	current, err := s.users.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if current == nil {
		return nil, ErrUserNotFound
	}
	if !current.IsActive {
		return nil, fmt.Errorf("%w: inactive user", ErrForbidden)
	}
	return current, nil
}

// RequireAdmin fails with ErrForbidden unless the user holds the admin role.
func (s *Service) RequireAdmin(user *User) (*User, error) {
	if RoleOf(user) != RoleAdmin {
		return nil, fmt.Errorf("%w: admin required", ErrForbidden)
	}
	return user, nil
}

// Signup registers a new account. The password must match its confirmation
// and satisfy the strength policy, and the email must be unused.
func (s *Service) Signup(ctx context.Context, email, password, confirm string) (*User, error) {
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if err := CheckPolicy(password); err != nil {
		return nil, err
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, email, digest)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

// Login verifies credentials, records last_login, and issues a token pair.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*User, TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if user == nil || !s.hasher.Verify(password, user.HashedPassword) {
		return nil, TokenPair{}, ErrBadCredentials
	}
	if !user.IsActive {
		return nil, TokenPair{}, ErrUserInactive
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// Login still succeeds; the timestamp is informational.
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("failed to record last login")
	} else {
		user.LastLogin = &now
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.logger.WithField("user_id", user.ID).Info("user logged in")
	return user, pair, nil
}

// Refresh validates a refresh token and rotates both tokens. Scopes are
// re-derived from the current user state, not cached claims. The old refresh
// token is not blacklisted; rotation is purely stateless.
func (s *Service) Refresh(ctx context.Context, rawRefresh string) (*User, TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(rawRefresh)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := s.users.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		return nil, TokenPair{}, fmt.Errorf("user lookup failed: %w", err)
	}
	if user == nil {
		return nil, TokenPair{}, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, TokenPair{}, ErrUserInactive
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return user, pair, nil
}

func (s *Service) issuePair(user *User) (TokenPair, error) {
	scopes := ScopesOf(RoleOf(user))
	access, err := s.tokens.IssueAccess(user.ID, user.Email, scopes)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.ID, user.Email)
	if err != nil {
		return TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}
