package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/freshcart/go-auth"
)

func TestPrincipalContextRoundTrip(t *testing.T) {
	principal := auth.NewPrincipal(newTestUser("alice", auth.RoleCustomer))

	ctx := auth.WithPrincipal(context.Background(), principal)

	got, ok := auth.PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, principal, got)
}

func TestPrincipalFromContextMissing(t *testing.T) {
	_, ok := auth.PrincipalFromContext(context.Background())
	assert.False(t, ok)

	ctx := auth.WithPrincipal(context.Background(), nil)
	_, ok = auth.PrincipalFromContext(ctx)
	assert.False(t, ok)
}

func TestPrincipalRoles(t *testing.T) {
	user := newTestUser("alice", auth.RoleCustomer)
	principal := auth.NewPrincipal(user)

	assert.Equal(t, user.ID.String(), principal.UserID)
	assert.Equal(t, []string{"ROLE_CUSTOMER"}, principal.Authorities)

	assert.True(t, principal.HasRole(auth.RoleCustomer))
	assert.False(t, principal.HasRole(auth.RoleAdmin))
	assert.True(t, principal.HasAnyRole(auth.RoleCustomer, auth.RoleAdmin))
	assert.False(t, principal.HasAnyRole(auth.RoleAdmin))

	var nobody *auth.Principal
	assert.False(t, nobody.HasRole(auth.RoleCustomer))
	assert.False(t, nobody.HasAnyRole(auth.RoleCustomer, auth.RoleAdmin))
}
