package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	auth "github.com/freshcart/go-auth"
)

func customerPrincipal() *auth.Principal {
	return auth.NewPrincipal(newTestUser("bob", auth.RoleCustomer))
}

func adminPrincipal() *auth.Principal {
	return auth.NewPrincipal(newTestUser("root", auth.RoleAdmin))
}

func TestDefaultPolicyEvaluate(t *testing.T) {
	policy := auth.DefaultPolicy()

	cases := []struct {
		name      string
		path      string
		principal *auth.Principal
		allowed   bool
	}{
		{"health check without principal", "/health", nil, true},
		{"auth endpoints without principal", "/auth/login", nil, true},
		{"public namespace without principal", "/public/catalog", nil, true},
		{"api docs without principal", "/v3/api-docs/swagger.json", nil, true},

		{"admin path without principal", "/admin/dashboard", nil, false},
		{"admin path as customer", "/admin/dashboard", customerPrincipal(), false},
		{"admin path as admin", "/admin/dashboard", adminPrincipal(), true},
		{"product admin as customer", "/products/admin/create", customerPrincipal(), false},
		{"order admin as admin", "/orders/admin/all", adminPrincipal(), true},

		{"cart as customer", "/cart/items", customerPrincipal(), true},
		{"cart as admin", "/cart/items", adminPrincipal(), true},
		{"cart without principal", "/cart/items", nil, false},
		{"orders as customer", "/orders/42", customerPrincipal(), true},
		{"reviews without principal", "/reviews/9", nil, false},

		{"unmatched path without principal", "/categories/1", nil, false},
		{"unmatched path as customer", "/categories/1", customerPrincipal(), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := policy.Evaluate(tc.path, tc.principal)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, auth.ErrAccessDenied)
			}
		})
	}
}

func TestPolicyFirstMatchWins(t *testing.T) {
	policy := auth.NewPolicy(
		auth.Rule{Prefix: "/orders/admin/", Roles: []auth.Role{auth.RoleAdmin}},
		auth.Rule{Prefix: "/orders/", Roles: []auth.Role{auth.RoleCustomer, auth.RoleAdmin}},
	)

	// the admin rule must not fall through to the broader orders rule
	err := policy.Evaluate("/orders/admin/all", customerPrincipal())
	assert.ErrorIs(t, err, auth.ErrAccessDenied)

	assert.NoError(t, policy.Evaluate("/orders/42", customerPrincipal()))
}

func TestPolicyOrderingMatters(t *testing.T) {
	// a broader rule listed first swallows the narrower one
	policy := auth.NewPolicy(
		auth.Rule{Prefix: "/orders/", Roles: []auth.Role{auth.RoleCustomer, auth.RoleAdmin}},
		auth.Rule{Prefix: "/orders/admin/", Roles: []auth.Role{auth.RoleAdmin}},
	)

	assert.NoError(t, policy.Evaluate("/orders/admin/all", customerPrincipal()))
}

func TestPolicyIsPublic(t *testing.T) {
	policy := auth.DefaultPolicy()

	assert.True(t, policy.IsPublic("/health"))
	assert.True(t, policy.IsPublic("/auth/refresh"))
	assert.False(t, policy.IsPublic("/cart/items"))
	assert.False(t, policy.IsPublic("/nowhere"))
}

func TestPolicyRoleLessRule(t *testing.T) {
	policy := auth.NewPolicy(
		auth.Rule{Prefix: "/me/"},
	)

	assert.ErrorIs(t, policy.Evaluate("/me/settings", nil), auth.ErrAccessDenied)
	assert.NoError(t, policy.Evaluate("/me/settings", customerPrincipal()))
}
