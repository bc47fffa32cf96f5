package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Structured authentication errors. Transports map these through category and
// text code instead of string matching.
var (
	// ErrTokenMalformed is returned when a token does not have the expected
	// three segment structure or its segments fail to decode.
	ErrTokenMalformed = goerrors.New("authentication token is malformed", goerrors.CategoryAuth).
				WithTextCode("TOKEN_MALFORMED").
				WithCode(goerrors.CodeUnauthorized)

	// ErrSignatureInvalid is returned when the token signature does not verify
	// under the configured signing key.
	ErrSignatureInvalid = goerrors.New("authentication token signature is invalid", goerrors.CategoryAuth).
				WithTextCode("TOKEN_SIGNATURE_INVALID").
				WithCode(goerrors.CodeUnauthorized)

	// ErrTokenExpired is returned when a token is past its expiration claim.
	ErrTokenExpired = goerrors.New("authentication token is expired", goerrors.CategoryAuth).
			WithTextCode("TOKEN_EXPIRED").
			WithCode(goerrors.CodeUnauthorized)

	// ErrSubjectMismatch is returned when a token subject does not match the
	// user it is being validated against.
	ErrSubjectMismatch = goerrors.New("token subject does not match user", goerrors.CategoryAuth).
				WithTextCode("TOKEN_SUBJECT_MISMATCH").
				WithCode(goerrors.CodeUnauthorized)

	// ErrUnknownUser is returned when a token subject or login identifier does
	// not resolve to a stored user record.
	ErrUnknownUser = goerrors.New("user not found", goerrors.CategoryAuth).
			WithTextCode("UNKNOWN_USER").
			WithCode(goerrors.CodeUnauthorized)

	// ErrAccountLocked is returned on login while the lockout window is open.
	ErrAccountLocked = goerrors.New("account is temporarily locked", goerrors.CategoryAuth).
				WithTextCode("ACCOUNT_LOCKED").
				WithCode(goerrors.CodeUnauthorized)

	// ErrAccountDisabled covers inactive, suspended, expired, and unverified
	// accounts. The distinction is deliberately not surfaced to callers.
	ErrAccountDisabled = goerrors.New("account is not enabled", goerrors.CategoryAuth).
				WithTextCode("ACCOUNT_DISABLED").
				WithCode(goerrors.CodeUnauthorized)

	// ErrCredentialsExpired is returned when the password is older than the
	// configured credential expiry window.
	ErrCredentialsExpired = goerrors.New("credentials have expired", goerrors.CategoryAuth).
				WithTextCode("CREDENTIALS_EXPIRED").
				WithCode(goerrors.CodeUnauthorized)

	// ErrMismatchedHashAndPassword is the single bad-credentials error for
	// login. Unknown identifiers degrade to this value so callers cannot
	// probe which usernames exist.
	ErrMismatchedHashAndPassword = goerrors.New("invalid credentials", goerrors.CategoryAuth).
					WithTextCode("INVALID_CREDENTIALS").
					WithCode(goerrors.CodeUnauthorized)

	// ErrAccessDenied is the only authorization failure surfaced by the
	// policy. It never reveals which identity check failed.
	ErrAccessDenied = goerrors.New("access denied", goerrors.CategoryAuthz).
			WithTextCode("ACCESS_DENIED").
			WithCode(goerrors.CodeForbidden)

	// ErrNoEmptyString rejects empty passwords before hashing.
	ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryBadInput).
				WithTextCode("EMPTY_VALUE").
				WithCode(goerrors.CodeBadRequest)
)

// hasTextCode reports whether err carries the given text code anywhere in
// its chain. Classification goes through the code, not the rendered message.
func hasTextCode(err error, textCode string) bool {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode == textCode
	}
	return false
}

// IsTokenExpiredError checks for expired token errors, including legacy
// string-matched errors from the JWT library.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenExpired) || hasTextCode(err, ErrTokenExpired.TextCode) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError checks for malformed token errors.
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if goerrors.Is(err, ErrTokenMalformed) || hasTextCode(err, ErrTokenMalformed.TextCode) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
