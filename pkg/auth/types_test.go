package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleOf(t *testing.T) {
	assert.Equal(t, RoleUser, RoleOf(&User{}))
	assert.Equal(t, RoleAdmin, RoleOf(&User{IsAdmin: true}))
	assert.Equal(t, RoleUser, RoleOf(nil))
}

func TestScopesOf_AdminSuperset(t *testing.T) {
	user := ScopesOf(RoleUser)
	admin := ScopesOf(RoleAdmin)

	for _, s := range user {
		assert.Contains(t, admin, s, "admin scopes must be a superset of user scopes")
	}
	assert.Contains(t, admin, ScopeAdmin)
	assert.NotContains(t, user, ScopeAdmin)
}

func TestScopesOf_ReturnsCopy(t *testing.T) {
	a := ScopesOf(RoleUser)
	a[0] = Scope("mutated")
	assert.NotContains(t, ScopesOf(RoleUser), Scope("mutated"))
}

func TestAuthContext_HasScope(t *testing.T) {
	ac := &AuthContext{Scopes: []Scope{ScopeMaterialsRead, ScopeProfileRead}}
	assert.True(t, ac.HasScope(ScopeMaterialsRead))
	assert.False(t, ac.HasScope(ScopeAdmin))

	empty := &AuthContext{}
	assert.False(t, empty.HasScope(ScopeMaterialsRead))
}
