package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/request-tracker/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	identity := domain.Identity{ID: 12, Name: "Jo", Email: "jo@x.com", Role: domain.RoleInternal}
	token, exp, err := tm.GenerateToken(identity)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)

	parsed, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, identity, parsed)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 5).GenerateToken(domain.Identity{ID: 1, Role: domain.RoleExternal})
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 5).ParseToken(token)
	assert.Error(t, err)
}

func TestClaims_IdentityDefaultsRole(t *testing.T) {
	tm := NewTokenManager("secret", 5)

	token, _, err := tm.GenerateToken(domain.Identity{ID: 3, Name: "Jo", Email: "jo@x.com"})
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)

	identity, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, domain.RoleExternal, identity.Role)
}
