package auth

import "time"

const (
	// DefaultLockoutThreshold is the number of consecutive failed login
	// attempts that locks an account.
	DefaultLockoutThreshold = 5
	// DefaultLockoutDuration is how long a lock stays in force.
	DefaultLockoutDuration = time.Hour
)

// LockoutMachine drives the account lockout state transitions. It only ever
// moves accounts between ACTIVE and LOCKED; the administrative statuses
// (INACTIVE, SUSPENDED, EXPIRED) are set externally and the machine treats
// them as terminal.
//
// The machine mutates the user record in memory; persisting the result is
// the caller's job (see UserStore). Two concurrent failed attempts for the
// same user can both observe attempt 4 and both write 5, each triggering the
// lock transition. That race is tolerated: the worst case is a double lock,
// never a missed one.
type LockoutMachine struct {
	threshold    int
	lockDuration time.Duration
	now          func() time.Time
}

// LockoutOption customizes lockout machine construction.
type LockoutOption func(*LockoutMachine)

// WithLockoutThreshold overrides the failed-attempt threshold.
func WithLockoutThreshold(threshold int) LockoutOption {
	return func(m *LockoutMachine) {
		if threshold > 0 {
			m.threshold = threshold
		}
	}
}

// WithLockoutDuration overrides how long accounts stay locked.
func WithLockoutDuration(d time.Duration) LockoutOption {
	return func(m *LockoutMachine) {
		if d > 0 {
			m.lockDuration = d
		}
	}
}

// WithLockoutClock injects a custom clock (useful for tests).
func WithLockoutClock(clock func() time.Time) LockoutOption {
	return func(m *LockoutMachine) {
		if clock != nil {
			m.now = clock
		}
	}
}

// NewLockoutMachine returns a lockout machine with the default threshold of
// five attempts and a one hour lock.
func NewLockoutMachine(opts ...LockoutOption) *LockoutMachine {
	m := &LockoutMachine{
		threshold:    DefaultLockoutThreshold,
		lockDuration: DefaultLockoutDuration,
		now:          time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

// RecordFailure registers a failed password check. When the counter reaches
// the threshold the account transitions to LOCKED with LockedUntil set.
// Returns true when this failure triggered the lock. Administrative statuses
// are left untouched; only the counter advances.
func (m *LockoutMachine) RecordFailure(user *User) bool {
	if user == nil {
		return false
	}

	user.EnsureStatus()
	user.FailedLoginAttempts++

	if user.FailedLoginAttempts < m.threshold {
		return false
	}

	switch user.Status {
	case StatusActive, StatusLocked:
		until := m.now().Add(m.lockDuration)
		user.Status = StatusLocked
		user.LockedUntil = &until
		return true
	default:
		return false
	}
}

// RecordSuccess registers a successful password check: a locked account
// transitions back to ACTIVE, the counter and lock timestamp clear, and
// LastLoginAt is stamped. This is the only place the counter resets.
func (m *LockoutMachine) RecordSuccess(user *User) {
	if user == nil {
		return
	}

	if user.Status == StatusLocked {
		user.Status = StatusActive
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil

	now := m.now()
	user.LastLoginAt = &now
}

// IsLocked reports whether the lock is currently in force, honoring the lazy
// unlock once LockedUntil has passed.
func (m *LockoutMachine) IsLocked(user *User) bool {
	if user == nil {
		return false
	}
	return !user.IsAccountNonLocked(m.now())
}
