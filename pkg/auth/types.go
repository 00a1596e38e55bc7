package auth

import "time"

// User is the identity record backing authentication decisions.
// HashedPassword is never serialized.
type User struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	HashedPassword string     `json:"-"`
	IsActive       bool       `json:"is_active"`
	IsAdmin        bool       `json:"is_admin"`
	CreatedAt      time.Time  `json:"created_at"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
}

// Role represents the account-level role derived from the admin flag.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Scope represents a named permission granted to a role.
type Scope string

const (
	ScopeMaterialsRead Scope = "materials:read"
	ScopeProfileRead   Scope = "profile:read"
	ScopeProfileWrite  Scope = "profile:write"
	ScopeUsersRead     Scope = "users:read"
	ScopeUsersWrite    Scope = "users:write"
	ScopeAdmin         Scope = "admin"
)

// userScopes is the scope set granted to every active account.
var userScopes = []Scope{
	ScopeMaterialsRead,
	ScopeProfileRead,
	ScopeProfileWrite,
}

// adminScopes is a strict superset of userScopes.
var adminScopes = []Scope{
	ScopeMaterialsRead,
	ScopeProfileRead,
	ScopeProfileWrite,
	ScopeUsersRead,
	ScopeUsersWrite,
	ScopeAdmin,
}

// RoleOf derives the role from the user record. Roles are never stored.
func RoleOf(u *User) Role {
	if u != nil && u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// ScopesOf maps a role to its scope set. The returned slice is a copy; callers
// may not mutate the static tables.
func ScopesOf(role Role) []Scope {
	var src []Scope
	switch role {
	case RoleAdmin:
		src = adminScopes
	default:
		src = userScopes
	}
	out := make([]Scope, len(src))
	copy(out, src)
	return out
}

// AuthContext holds request-scoped authenticated user information.
type AuthContext struct {
	User   *User
	Scopes []Scope
}

// HasScope reports whether the context carries the given scope.
func (ac *AuthContext) HasScope(scope Scope) bool {
	for _, s := range ac.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// TokenPair bundles a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}
