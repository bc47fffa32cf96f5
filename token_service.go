package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenService issues and verifies signed, time-bounded tokens. Verification
// is a pure function of the token text and the signing key; no server-side
// token state is kept, so tokens cannot be revoked before expiry. Short
// access TTLs backed by the refresh flow are the accepted tradeoff.
type TokenService struct {
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	logger     Logger
	now        func() time.Time
}

// TokenServiceOption customizes token service construction.
type TokenServiceOption func(*TokenService)

// WithTokenClock injects a custom clock (useful for tests).
func WithTokenClock(clock func() time.Time) TokenServiceOption {
	return func(ts *TokenService) {
		if clock != nil {
			ts.now = clock
		}
	}
}

// NewTokenService creates a new TokenService instance.
func NewTokenService(signingKey []byte, accessTTL, refreshTTL time.Duration, issuer string, logger Logger, opts ...TokenServiceOption) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}

	ts := &TokenService{
		signingKey: signingKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     issuer,
		logger:     logger,
		now:        time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(ts)
		}
	}

	return ts
}

// IssueAccessToken creates a signed access token for the identity. The
// subject is the username; userId and role travel as extension claims.
func (ts *TokenService) IssueAccessToken(identity Identity) (string, error) {
	if identity == nil {
		return "", goerrors.New("identity is required", goerrors.CategoryBadInput)
	}

	claims := ts.newClaims(identity.Username(), ts.accessTTL)
	claims.UserID = identity.ID()
	claims.UserRole = identity.Role()

	return ts.SignClaims(claims)
}

// IssueRefreshToken creates a signed refresh token for the identity. Refresh
// tokens carry only the subject plus the type marker and live longer than
// access tokens.
func (ts *TokenService) IssueRefreshToken(identity Identity) (string, error) {
	if identity == nil {
		return "", goerrors.New("identity is required", goerrors.CategoryBadInput)
	}

	claims := ts.newClaims(identity.Username(), ts.refreshTTL)
	claims.TokenType = TokenTypeRefresh

	return ts.SignClaims(claims)
}

// SignClaims signs an arbitrary claim set using the configured signing key.
func (ts *TokenService) SignClaims(claims *Claims) (string, error) {
	if claims == nil {
		return "", goerrors.New("claims must not be nil", goerrors.CategoryInternal)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signed, nil
}

// Verify parses and validates a token string, returning its claims. Failures
// map onto the structured taxonomy: ErrTokenExpired, ErrSignatureInvalid, or
// ErrTokenMalformed.
func (ts *TokenService) Verify(tokenString string) (*Claims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService verify encountered unexpected signing method: %v", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		switch {
		case goerrors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case goerrors.Is(err, jwt.ErrTokenSignatureInvalid), goerrors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
				WithTextCode(ErrTokenMalformed.TextCode)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService verify could not decode claims")
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// VerifyFor validates the token and checks that its subject matches the
// expected subject exactly (case-sensitive). Diagnostic callers get typed
// errors; boolean callers should use IsValidFor.
func (ts *TokenService) VerifyFor(tokenString, expectedSubject string) (*Claims, error) {
	claims, err := ts.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Subject() != expectedSubject {
		return nil, ErrSubjectMismatch
	}

	return claims, nil
}

// IsValidFor reports whether the token verifies, is unexpired, and was
// issued for the expected subject. It never returns an error for expected
// validation failures.
func (ts *TokenService) IsValidFor(tokenString, expectedSubject string) bool {
	_, err := ts.VerifyFor(tokenString, expectedSubject)
	return err == nil
}

// IsRefreshToken reports whether the token decodes successfully and carries
// the refresh type claim. Malformed or expired tokens report false.
func (ts *TokenService) IsRefreshToken(tokenString string) bool {
	claims, err := ts.Verify(tokenString)
	if err != nil {
		return false
	}
	return claims.IsRefresh()
}

// RemainingTime returns the time until the token expires, or zero for
// invalid or already expired tokens.
func (ts *TokenService) RemainingTime(tokenString string) time.Duration {
	claims, err := ts.Verify(tokenString)
	if err != nil {
		return 0
	}

	remaining := claims.Expires().Sub(ts.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ExtractUsername returns the subject claim of a verified token.
func (ts *TokenService) ExtractUsername(tokenString string) (string, error) {
	claims, err := ts.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject(), nil
}

// ExtractRole returns the role claim of a verified token.
func (ts *TokenService) ExtractRole(tokenString string) (string, error) {
	claims, err := ts.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Role(), nil
}

// ExtractUserID returns the userId claim of a verified token.
func (ts *TokenService) ExtractUserID(tokenString string) (string, error) {
	claims, err := ts.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (ts *TokenService) newClaims(subject string, ttl time.Duration) *Claims {
	now := ts.now()

	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    ts.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
