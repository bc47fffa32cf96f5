package auth

import (
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/viper"
)

// Config holds auth options.
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetIssuer() string
	GetTokenExpiration() time.Duration
	GetRefreshExpiration() time.Duration
	GetLockoutThreshold() int
	GetLockoutDuration() time.Duration
	GetContextKey() string
	GetAuthScheme() string
}

// minSigningKeyBytes enforces the recommended key size for HS256.
const minSigningKeyBytes = 32

// AppConfig is the viper-backed Config implementation. TTL values are read
// in milliseconds, matching the platform-wide configuration contract.
type AppConfig struct {
	SigningKey          string
	SigningMethod       string
	Issuer              string
	TokenExpirationMS   int64
	RefreshExpirationMS int64
	LockoutThreshold    int
	LockoutDurationMS   int64
	ContextKey          string
	AuthScheme          string
}

var _ Config = (*AppConfig)(nil)

func (c *AppConfig) GetSigningKey() string    { return c.SigningKey }
func (c *AppConfig) GetSigningMethod() string { return c.SigningMethod }
func (c *AppConfig) GetIssuer() string        { return c.Issuer }

func (c *AppConfig) GetTokenExpiration() time.Duration {
	return time.Duration(c.TokenExpirationMS) * time.Millisecond
}

func (c *AppConfig) GetRefreshExpiration() time.Duration {
	return time.Duration(c.RefreshExpirationMS) * time.Millisecond
}

func (c *AppConfig) GetLockoutThreshold() int { return c.LockoutThreshold }

func (c *AppConfig) GetLockoutDuration() time.Duration {
	return time.Duration(c.LockoutDurationMS) * time.Millisecond
}

func (c *AppConfig) GetContextKey() string { return c.ContextKey }
func (c *AppConfig) GetAuthScheme() string { return c.AuthScheme }

// Validate checks the invariants the rest of the package relies on: a key of
// at least 256 bits and a refresh TTL longer than the access TTL. The key
// itself is never logged or echoed back in errors.
func (c *AppConfig) Validate() error {
	if len(c.SigningKey) < minSigningKeyBytes {
		return goerrors.New("signing key must be at least 32 bytes", goerrors.CategoryValidation).
			WithTextCode("SIGNING_KEY_TOO_SHORT")
	}
	if c.SigningMethod != "" && c.SigningMethod != "HS256" {
		return goerrors.New("unsupported signing method", goerrors.CategoryValidation).
			WithTextCode("UNSUPPORTED_SIGNING_METHOD")
	}
	if c.TokenExpirationMS <= 0 {
		return goerrors.New("token expiration must be positive", goerrors.CategoryValidation).
			WithTextCode("INVALID_TOKEN_EXPIRATION")
	}
	if c.RefreshExpirationMS <= c.TokenExpirationMS {
		return goerrors.New("refresh expiration must exceed token expiration", goerrors.CategoryValidation).
			WithTextCode("INVALID_REFRESH_EXPIRATION")
	}
	if c.LockoutThreshold <= 0 {
		return goerrors.New("lockout threshold must be positive", goerrors.CategoryValidation).
			WithTextCode("INVALID_LOCKOUT_THRESHOLD")
	}
	return nil
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("security.jwt.signing_method", "HS256")
	v.SetDefault("security.jwt.issuer", "freshcart")
	v.SetDefault("security.jwt.expiration", int64(3_600_000))
	v.SetDefault("security.jwt.refresh_expiration", int64(604_800_000))
	v.SetDefault("security.jwt.lockout_threshold", DefaultLockoutThreshold)
	v.SetDefault("security.jwt.lockout_duration", DefaultLockoutDuration.Milliseconds())
	v.SetDefault("security.jwt.context_key", "user")
	v.SetDefault("security.jwt.auth_scheme", "Bearer")
}

// LoadConfig reads the auth configuration from the given file (any format
// viper understands) plus FRESHCART_* environment overrides, applies
// defaults, and validates the result. An empty path loads defaults and
// environment values only.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	setConfigDefaults(v)

	v.SetEnvPrefix("FRESHCART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read auth config")
		}
	}

	cfg := &AppConfig{
		SigningKey:          v.GetString("security.jwt.secret"),
		SigningMethod:       v.GetString("security.jwt.signing_method"),
		Issuer:              v.GetString("security.jwt.issuer"),
		TokenExpirationMS:   v.GetInt64("security.jwt.expiration"),
		RefreshExpirationMS: v.GetInt64("security.jwt.refresh_expiration"),
		LockoutThreshold:    v.GetInt("security.jwt.lockout_threshold"),
		LockoutDurationMS:   v.GetInt64("security.jwt.lockout_duration"),
		ContextKey:          v.GetString("security.jwt.context_key"),
		AuthScheme:          v.GetString("security.jwt.auth_scheme"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
