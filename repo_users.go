package auth

import (
	"context"
	"database/sql"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunUserStore persists users through bun. It implements UserStore for the
// login and pipeline flows; the wider user CRUD lives with the rest of the
// persistence layer.
type BunUserStore struct {
	db *bun.DB
}

var _ UserStore = (*BunUserStore)(nil)

// NewUserStore creates a bun-backed UserStore.
func NewUserStore(db *bun.DB) *BunUserStore {
	return &BunUserStore{db: db}
}

// GetByUsername fetches a user record by exact username. Missing records
// fail with ErrUnknownUser.
func (s *BunUserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}

	err := s.db.NewSelect().
		Model(user).
		Where("usr.username = ?", username).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownUser
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch user by username")
	}

	user.EnsureStatus()

	return user, nil
}

// TrackFailedLogin persists the lockout bookkeeping after a failed password
// check: the attempt counter, the status, and the lock timestamp.
func (s *BunUserStore) TrackFailedLogin(ctx context.Context, user *User) error {
	if user == nil {
		return ErrUnknownUser
	}

	now := time.Now()
	user.UpdatedAt = &now

	_, err := s.db.NewUpdate().
		Model(user).
		Column("failed_login_attempts", "status", "locked_until", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to track login attempt")
	}

	return nil
}

// TrackSuccessfulLogin persists the counter reset and login timestamp after
// a successful password check.
func (s *BunUserStore) TrackSuccessfulLogin(ctx context.Context, user *User) error {
	if user == nil {
		return ErrUnknownUser
	}

	now := time.Now()
	user.UpdatedAt = &now

	_, err := s.db.NewUpdate().
		Model(user).
		Column("failed_login_attempts", "status", "locked_until", "last_login_at", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to track successful login")
	}

	return nil
}

// Register inserts a new user record, assigning an ID when missing. The auth
// core itself never calls this; it exists for provisioning and tests.
func (s *BunUserStore) Register(ctx context.Context, user *User) (*User, error) {
	if user == nil {
		return nil, goerrors.New("user is required", goerrors.CategoryBadInput)
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.EnsureStatus()

	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to register user")
	}

	return user, nil
}
