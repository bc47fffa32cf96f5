package auth

import "context"

// Identity holds the attributes of an authenticated identity.
type Identity interface {
	ID() string
	Username() string
	Email() string
	Role() string
}

// Authenticator holds the credential-based authentication operations.
type Authenticator interface {
	Login(ctx context.Context, identifier, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// UserStore is the credential store contract the auth core consumes: a
// lookup by username plus persistence of the lockout bookkeeping fields.
// Implementations must return ErrUnknownUser for missing records.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	TrackFailedLogin(ctx context.Context, user *User) error
	TrackSuccessfulLogin(ctx context.Context, user *User) error
}

// PasswordAuthenticator authenticates passwords.
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}
