package auth

import "strings"

// Rule binds a request path prefix to the access it requires. Public rules
// pass without authentication; rules with roles require one of them; rules
// with no roles require any authenticated principal.
type Rule struct {
	Prefix string
	Public bool
	Roles  []Role
}

// Policy is an ordered route authorization table. Rules are evaluated top to
// bottom and the first matching prefix wins; nothing falls through to a
// later, less specific rule once matched. Requests matching no rule fall to
// the default rule: any authenticated principal.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from the given rules, evaluated in order.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// DefaultPolicy is the storefront route table: public endpoints first, then
// the admin namespaces, then the customer-facing authenticated namespaces.
// Order matters: /orders/admin/ must match before /orders/.
func DefaultPolicy() *Policy {
	return NewPolicy(
		Rule{Prefix: "/auth/", Public: true},
		Rule{Prefix: "/public/", Public: true},
		Rule{Prefix: "/health", Public: true},
		Rule{Prefix: "/actuator/health", Public: true},
		Rule{Prefix: "/swagger-ui/", Public: true},
		Rule{Prefix: "/v3/api-docs/", Public: true},

		Rule{Prefix: "/admin/", Roles: []Role{RoleAdmin}},
		Rule{Prefix: "/users/admin/", Roles: []Role{RoleAdmin}},
		Rule{Prefix: "/products/admin/", Roles: []Role{RoleAdmin}},
		Rule{Prefix: "/orders/admin/", Roles: []Role{RoleAdmin}},
		Rule{Prefix: "/categories/admin/", Roles: []Role{RoleAdmin}},

		Rule{Prefix: "/users/profile/", Roles: []Role{RoleCustomer, RoleAdmin}},
		Rule{Prefix: "/cart/", Roles: []Role{RoleCustomer, RoleAdmin}},
		Rule{Prefix: "/orders/", Roles: []Role{RoleCustomer, RoleAdmin}},
		Rule{Prefix: "/reviews/", Roles: []Role{RoleCustomer, RoleAdmin}},
	)
}

// IsPublic reports whether the path matches a public rule before any
// restricted rule does. The authentication pipeline uses this to skip token
// handling entirely.
func (p *Policy) IsPublic(path string) bool {
	for _, rule := range p.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Public
		}
	}
	return false
}

// Evaluate applies the first matching rule to the principal. A nil principal
// passes only public rules. Every denial is the same opaque ErrAccessDenied;
// which check failed is never revealed to the caller.
func (p *Policy) Evaluate(path string, principal *Principal) error {
	for _, rule := range p.rules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		return p.apply(rule, principal)
	}

	// default rule: any authenticated principal
	if principal == nil {
		return ErrAccessDenied
	}
	return nil
}

func (p *Policy) apply(rule Rule, principal *Principal) error {
	if rule.Public {
		return nil
	}
	if principal == nil {
		return ErrAccessDenied
	}
	if len(rule.Roles) == 0 {
		return nil
	}
	if !principal.HasAnyRole(rule.Roles...) {
		return ErrAccessDenied
	}
	return nil
}
