package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// TokenPair is the result of a successful login: a short-lived access token
// and a longer-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Auther orchestrates credential logins: password verification, the lockout
// state machine, account gates, and token pair issuance. Token verification
// on the request path never touches it; that is the middleware's job.
type Auther struct {
	store   UserStore
	tokens  *TokenService
	lockout *LockoutMachine
	logger  Logger
	now     func() time.Time
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Auther wired to the given store and config.
func NewAuthenticator(store UserStore, cfg Config) *Auther {
	return &Auther{
		store: store,
		tokens: NewTokenService(
			[]byte(cfg.GetSigningKey()),
			cfg.GetTokenExpiration(),
			cfg.GetRefreshExpiration(),
			cfg.GetIssuer(),
			defLogger{},
		),
		lockout: NewLockoutMachine(
			WithLockoutThreshold(cfg.GetLockoutThreshold()),
			WithLockoutDuration(cfg.GetLockoutDuration()),
		),
		logger: defLogger{},
		now:    time.Now,
	}
}

// WithLogger sets the logger used by the authenticator.
func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithClock injects a custom clock shared with the lockout machine and token
// service (useful for tests).
func (s *Auther) WithClock(clock func() time.Time) *Auther {
	if clock == nil {
		return s
	}
	s.now = clock
	WithLockoutClock(clock)(s.lockout)
	WithTokenClock(clock)(s.tokens)
	return s
}

// TokenService returns the TokenService instance used by this authenticator.
func (s *Auther) TokenService() *TokenService {
	return s.tokens
}

// Login verifies the password for the given username and returns a token
// pair. Failed checks advance the lockout counter; the lock transition
// itself is silent and only observable through later attempts failing with
// ErrAccountLocked. Unknown usernames degrade to the generic bad-credentials
// error so callers cannot enumerate accounts.
func (s *Auther) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	user, err := s.store.GetByUsername(ctx, identifier)
	if err != nil {
		if goerrors.Is(err, ErrUnknownUser) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during login")
	}

	user.EnsureStatus()
	now := s.now()

	// A lock still in force rejects the attempt before the password is even
	// checked. An elapsed lock falls through; a successful check below then
	// performs the formal unlock.
	if s.lockout.IsLocked(user) {
		return nil, ErrAccountLocked
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.lockout.RecordFailure(user)
		if err2 := s.store.TrackFailedLogin(ctx, user); err2 != nil {
			return nil, goerrors.Wrap(err2, goerrors.CategoryInternal, "failed to track login attempt")
		}
		s.logger.Debug("login failed for %q, attempt %d", identifier, user.FailedLoginAttempts)
		return nil, ErrMismatchedHashAndPassword
	}

	if err := statusAuthError(user, now); err != nil {
		s.logger.Warn("login blocked for %q, status %s", identifier, user.Status)
		return nil, err
	}

	s.lockout.RecordSuccess(user)
	if err := s.store.TrackSuccessfulLogin(ctx, user); err != nil {
		s.logger.Error("failed to track successful login: %v", err)
	}

	identity := NewIdentityFromUser(user)

	access, err := s.tokens.IssueAccessToken(identity)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.IssueRefreshToken(identity)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The user
// is re-resolved and re-gated so account changes since issuance are honored.
func (s *Auther) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken)
	if err != nil {
		return "", err
	}

	if !claims.IsRefresh() {
		return "", goerrors.New("refresh token required", goerrors.CategoryAuth).
			WithTextCode("REFRESH_TOKEN_REQUIRED").
			WithCode(goerrors.CodeUnauthorized)
	}

	user, err := s.store.GetByUsername(ctx, claims.Subject())
	if err != nil {
		if goerrors.Is(err, ErrUnknownUser) {
			return "", ErrUnknownUser
		}
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during refresh")
	}

	user.EnsureStatus()

	if err := statusAuthError(user, s.now()); err != nil {
		return "", err
	}

	return s.tokens.IssueAccessToken(NewIdentityFromUser(user))
}
