package auth_test

import (
	"context"
	"sync"
	"time"

	auth "github.com/freshcart/go-auth"
	"github.com/google/uuid"
)

// testConfig implements auth.Config with sane test values.
type testConfig struct {
	signingKey string
	accessTTL  time.Duration
	refreshTTL time.Duration
	threshold  int
	lockFor    time.Duration
}

func newTestConfig() *testConfig {
	return &testConfig{
		signingKey: "0123456789abcdef0123456789abcdef",
		accessTTL:  time.Hour,
		refreshTTL: 24 * time.Hour,
		threshold:  5,
		lockFor:    time.Hour,
	}
}

func (c *testConfig) GetSigningKey() string               { return c.signingKey }
func (c *testConfig) GetSigningMethod() string            { return "HS256" }
func (c *testConfig) GetIssuer() string                   { return "freshcart" }
func (c *testConfig) GetTokenExpiration() time.Duration   { return c.accessTTL }
func (c *testConfig) GetRefreshExpiration() time.Duration { return c.refreshTTL }
func (c *testConfig) GetLockoutThreshold() int            { return c.threshold }
func (c *testConfig) GetLockoutDuration() time.Duration   { return c.lockFor }
func (c *testConfig) GetContextKey() string               { return "user" }
func (c *testConfig) GetAuthScheme() string               { return "Bearer" }

// memStore is an in-memory UserStore.
type memStore struct {
	mu        sync.Mutex
	users     map[string]*auth.User
	failed    int
	succeeded int
	err       error
}

func newMemStore(users ...*auth.User) *memStore {
	s := &memStore{users: map[string]*auth.User{}}
	for _, u := range users {
		s.users[u.Username] = u
	}
	return s
}

func (m *memStore) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, auth.ErrUnknownUser
}

func (m *memStore) TrackFailedLogin(ctx context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed++
	m.users[user.Username] = user
	return nil
}

func (m *memStore) TrackSuccessfulLogin(ctx context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.succeeded++
	m.users[user.Username] = user
	return nil
}

var _ auth.UserStore = (*memStore)(nil)

const testPassword = "correct-horse-battery"

var (
	testHashOnce sync.Once
	testHash     string
)

func newTestUser(username string, role auth.Role) *auth.User {
	testHashOnce.Do(func() {
		h, err := auth.HashPassword(testPassword)
		if err != nil {
			panic(err)
		}
		testHash = h
	})
	hash := testHash
	return &auth.User{
		ID:            uuid.New(),
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  hash,
		Role:          role,
		Status:        auth.StatusActive,
		EmailVerified: true,
	}
}
