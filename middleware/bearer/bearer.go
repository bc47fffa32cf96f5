// Package bearer implements the per-request authentication pipeline: it
// extracts and verifies a bearer token, resolves and gates the user, and
// installs the resulting principal before the route authorization rules are
// applied. Token failures never abort a request; they only leave the request
// unauthenticated for the policy to judge.
package bearer

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	auth "github.com/freshcart/go-auth"
)

// HeaderPrefix is the exact bearer scheme prefix: capital B, one space.
const HeaderPrefix = "Bearer "

// Config configures the bearer middleware.
type Config struct {
	// Tokens verifies presented tokens. Required.
	Tokens *auth.TokenService
	// Store resolves token subjects to user records. Required.
	Store auth.UserStore
	// Policy is the route authorization table. Defaults to auth.DefaultPolicy.
	Policy *auth.Policy
	// Logger receives diagnostic entries for rejected tokens.
	Logger auth.Logger
	// Auth supplies the shared auth settings. When set, its context key and
	// auth scheme fill the unset fields below.
	Auth auth.Config
	// ContextKey is the fiber locals key the principal is stored under.
	// Defaults to "user".
	ContextKey string
	// Scheme is the Authorization header scheme. Defaults to "Bearer".
	Scheme string
	// Now is the clock used for account usability checks.
	Now func() time.Time
}

func (cfg *Config) setDefaults() {
	if cfg.Policy == nil {
		cfg.Policy = auth.DefaultPolicy()
	}
	if cfg.Logger == nil {
		cfg.Logger = auth.NewZapLogger(nil)
	}
	if cfg.Auth != nil {
		if cfg.ContextKey == "" {
			cfg.ContextKey = cfg.Auth.GetContextKey()
		}
		if cfg.Scheme == "" {
			cfg.Scheme = cfg.Auth.GetAuthScheme()
		}
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}
	if cfg.Scheme == "" {
		cfg.Scheme = "Bearer"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
}

// New returns a fiber handler that authenticates the request and enforces
// the route authorization policy. It runs once per request, before business
// handlers.
func New(config Config) fiber.Handler {
	cfg := config
	cfg.setDefaults()

	return func(c *fiber.Ctx) error {
		path := c.Path()

		if cfg.Policy.IsPublic(path) {
			return c.Next()
		}

		principal := cfg.authenticate(c)
		if principal != nil {
			c.Locals(cfg.ContextKey, principal)
			c.SetUserContext(auth.WithPrincipal(c.UserContext(), principal))
		}

		if err := cfg.Policy.Evaluate(path, principal); err != nil {
			// The same opaque denial regardless of which check failed; only
			// the status code distinguishes missing from insufficient
			// credentials.
			status := fiber.StatusForbidden
			if principal == nil {
				status = fiber.StatusUnauthorized
			}
			return fiber.NewError(status, "access denied")
		}

		return c.Next()
	}
}

// authenticate resolves the request to a principal, or nil when anything
// along the way fails. It performs no persistent mutation; lockout counters
// move only in the explicit login flow.
func (cfg *Config) authenticate(c *fiber.Ctx) *auth.Principal {
	raw := extractToken(c.Get(fiber.HeaderAuthorization), cfg.Scheme+" ")
	if raw == "" {
		return nil
	}

	claims, err := cfg.Tokens.Verify(raw)
	if err != nil {
		cfg.Logger.Debug("rejected bearer token: %v", err)
		return nil
	}

	user, err := cfg.Store.GetByUsername(c.UserContext(), claims.Subject())
	if err != nil {
		cfg.Logger.Debug("token subject did not resolve: %v", err)
		return nil
	}

	if !cfg.Tokens.IsValidFor(raw, user.Username) {
		cfg.Logger.Debug("token not valid for user %q", user.Username)
		return nil
	}

	if !user.IsUsable(cfg.Now()) {
		cfg.Logger.Debug("account %q not usable, status %s", user.Username, user.Status)
		return nil
	}

	return auth.NewPrincipal(user)
}

// ExtractToken pulls the bearer token out of an Authorization header value.
// The scheme prefix is matched case-sensitively and a header that is only
// the prefix plus whitespace counts as no token at all.
func ExtractToken(header string) string {
	return extractToken(header, HeaderPrefix)
}

func extractToken(header, prefix string) string {
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// PrincipalFromCtx returns the principal the middleware stored in fiber
// locals, using the same default key.
func PrincipalFromCtx(c *fiber.Ctx, key string) (*auth.Principal, bool) {
	if key == "" {
		key = "user"
	}
	p, ok := c.Locals(key).(*auth.Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
