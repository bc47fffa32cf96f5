package auth

import "context"

// Principal is the resolved identity attached to a request after successful
// authentication: identity fields plus the authority derived from the role.
type Principal struct {
	UserID      string
	Username    string
	Role        Role
	Authorities []string
}

// NewPrincipal builds a Principal from an authenticated user record.
func NewPrincipal(user *User) *Principal {
	if user == nil {
		return nil
	}
	return &Principal{
		UserID:      user.ID.String(),
		Username:    user.Username,
		Role:        user.Role,
		Authorities: user.Authorities(),
	}
}

// HasRole reports whether the principal carries the given role, matching
// either the plain role name or its authority form.
func (p *Principal) HasRole(role Role) bool {
	if p == nil {
		return false
	}
	if p.Role == role {
		return true
	}
	for _, authority := range p.Authorities {
		if authority == AuthorityPrefix+role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the principal carries any of the given roles.
func (p *Principal) HasAnyRole(roles ...Role) bool {
	for _, role := range roles {
		if p.HasRole(role) {
			return true
		}
	}
	return false
}

var principalCtxKey = &contextKey{"principal"}

type contextKey struct {
	name string
}

// WithPrincipal installs the Principal in the given context. The security
// context is a plain value threaded through the request chain, never a
// process-wide singleton, so concurrent requests stay isolated.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// PrincipalFromContext finds the Principal in the context. The second return
// is false for unauthenticated requests.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalCtxKey).(*Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
