package auth_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/freshcart/go-auth"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	_, err = db.NewCreateTable().
		Model((*auth.User)(nil)).
		Exec(context.Background())
	require.NoError(t, err)

	return db
}

func TestUserStoreRegisterAndGet(t *testing.T) {
	store := auth.NewUserStore(newTestDB(t))
	ctx := context.Background()

	created, err := store.Register(ctx, &auth.User{
		Username:      "alice",
		Email:         "alice@example.com",
		PasswordHash:  "$2a$12$not-a-real-hash",
		Role:          auth.RoleCustomer,
		EmailVerified: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, auth.StatusActive, created.Status)

	got, err := store.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, auth.RoleCustomer, got.Role)
	assert.True(t, got.EmailVerified)
}

func TestUserStoreUnknownUsername(t *testing.T) {
	store := auth.NewUserStore(newTestDB(t))

	_, err := store.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, auth.ErrUnknownUser)
}

func TestUserStoreTrackFailedLogin(t *testing.T) {
	store := auth.NewUserStore(newTestDB(t))
	ctx := context.Background()

	user, err := store.Register(ctx, &auth.User{
		Username:      "bob",
		Email:         "bob@example.com",
		PasswordHash:  "$2a$12$not-a-real-hash",
		Role:          auth.RoleCustomer,
		EmailVerified: true,
	})
	require.NoError(t, err)

	lockedUntil := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	user.FailedLoginAttempts = 5
	user.Status = auth.StatusLocked
	user.LockedUntil = &lockedUntil

	require.NoError(t, store.TrackFailedLogin(ctx, user))

	got, err := store.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 5, got.FailedLoginAttempts)
	assert.Equal(t, auth.StatusLocked, got.Status)
	require.NotNil(t, got.LockedUntil)
	assert.WithinDuration(t, lockedUntil, *got.LockedUntil, time.Second)
}

func TestUserStoreTrackSuccessfulLogin(t *testing.T) {
	store := auth.NewUserStore(newTestDB(t))
	ctx := context.Background()

	user, err := store.Register(ctx, &auth.User{
		Username:            "carol",
		Email:               "carol@example.com",
		PasswordHash:        "$2a$12$not-a-real-hash",
		Role:                auth.RoleAdmin,
		EmailVerified:       true,
		FailedLoginAttempts: 3,
	})
	require.NoError(t, err)

	loginAt := time.Now().UTC().Truncate(time.Second)
	user.FailedLoginAttempts = 0
	user.Status = auth.StatusActive
	user.LockedUntil = nil
	user.LastLoginAt = &loginAt

	require.NoError(t, store.TrackSuccessfulLogin(ctx, user))

	got, err := store.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Zero(t, got.FailedLoginAttempts)
	assert.Equal(t, auth.StatusActive, got.Status)
	assert.Nil(t, got.LockedUntil)
	require.NotNil(t, got.LastLoginAt)
	assert.WithinDuration(t, loginAt, *got.LastLoginAt, time.Second)
}

func TestUserStoreNilGuards(t *testing.T) {
	store := auth.NewUserStore(newTestDB(t))
	ctx := context.Background()

	assert.ErrorIs(t, store.TrackFailedLogin(ctx, nil), auth.ErrUnknownUser)
	assert.ErrorIs(t, store.TrackSuccessfulLogin(ctx, nil), auth.ErrUnknownUser)

	_, err := store.Register(ctx, nil)
	assert.Error(t, err)
}
