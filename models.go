package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Role is a user's global role.
type Role = string

const (
	// RoleCustomer is a regular storefront customer.
	RoleCustomer Role = "CUSTOMER"
	// RoleAdmin can manage catalog, orders, and other users.
	RoleAdmin Role = "ADMIN"
)

// AuthorityPrefix is prepended to the role when building authority names.
const AuthorityPrefix = "ROLE_"

// AccountStatus is the lifecycle status of a user account.
type AccountStatus = string

const (
	StatusActive    AccountStatus = "ACTIVE"
	StatusInactive  AccountStatus = "INACTIVE"
	StatusLocked    AccountStatus = "LOCKED"
	StatusSuspended AccountStatus = "SUSPENDED"
	StatusExpired   AccountStatus = "EXPIRED"
)

// CredentialExpiryWindow is how long a password stays valid after its last
// change before authentication fails with ErrCredentialsExpired.
const CredentialExpiryWindow = 90 * 24 * time.Hour

// User is the stored user record. The auth core only mutates the lockout
// fields (FailedLoginAttempts, LockedUntil, Status) and LastLoginAt; creation
// and deletion belong to the persistence layer.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID                   uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username             string        `bun:"username,notnull,unique" json:"username,omitempty"`
	Email                string        `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash         string        `bun:"password_hash,notnull" json:"-"`
	Role                 Role          `bun:"role,notnull" json:"role,omitempty"`
	Status               AccountStatus `bun:"status,notnull" json:"status,omitempty"`
	EmailVerified        bool          `bun:"email_verified,notnull" json:"email_verified,omitempty"`
	FailedLoginAttempts  int           `bun:"failed_login_attempts,notnull" json:"failed_login_attempts,omitempty"`
	LockedUntil          *time.Time    `bun:"locked_until,nullzero" json:"locked_until,omitempty"`
	LastLoginAt          *time.Time    `bun:"last_login_at,nullzero" json:"last_login_at,omitempty"`
	LastPasswordChangeAt *time.Time    `bun:"last_password_change_at,nullzero" json:"last_password_change_at,omitempty"`
	CreatedAt            *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt            *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt            *time.Time    `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// EnsureStatus defaults a blank status to active.
func (u *User) EnsureStatus() {
	if u.Status == "" {
		u.Status = StatusActive
	}
}

// Authorities returns the authority names derived from the user's role.
func (u *User) Authorities() []string {
	return []string{AuthorityPrefix + u.Role}
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCustomer reports whether the user holds the customer role.
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}

// IsAccountNonLocked reports whether the lockout gate passes. A locked
// account becomes passable again once LockedUntil elapses, without waiting
// for the formal transition back to active (that happens on the next
// successful login).
func (u *User) IsAccountNonLocked(now time.Time) bool {
	if u.Status != StatusLocked {
		return true
	}
	return u.LockedUntil != nil && now.After(*u.LockedUntil)
}

// IsAccountNonExpired reports whether the account itself has not expired.
func (u *User) IsAccountNonExpired() bool {
	return u.Status != StatusExpired
}

// IsCredentialsNonExpired reports whether the password is still inside the
// credential expiry window. Records with no change timestamp are treated as
// fresh accounts.
func (u *User) IsCredentialsNonExpired(now time.Time) bool {
	if u.LastPasswordChangeAt == nil {
		return true
	}
	return now.Before(u.LastPasswordChangeAt.Add(CredentialExpiryWindow))
}

// IsEnabled reports whether the account is active and the email verified.
func (u *User) IsEnabled() bool {
	return u.Status == StatusActive && u.EmailVerified
}

// IsUsable combines every per-request account gate: the lockout window
// (including lazy unlock), account expiry, credential expiry, email
// verification, and the administrative statuses.
func (u *User) IsUsable(now time.Time) bool {
	if !u.IsAccountNonLocked(now) {
		return false
	}
	if !u.IsAccountNonExpired() {
		return false
	}
	if !u.IsCredentialsNonExpired(now) {
		return false
	}
	if !u.EmailVerified {
		return false
	}
	switch u.Status {
	case StatusActive:
		return true
	case StatusLocked:
		// lockout window already checked above
		return true
	default:
		return false
	}
}

// statusAuthError maps an unusable account to the error a login or refresh
// attempt should fail with. Returns nil when the account is usable.
func statusAuthError(u *User, now time.Time) error {
	if !u.IsAccountNonLocked(now) {
		return ErrAccountLocked
	}
	if !u.IsCredentialsNonExpired(now) {
		return ErrCredentialsExpired
	}
	if !u.IsAccountNonExpired() || !u.EmailVerified {
		return ErrAccountDisabled
	}
	switch u.Status {
	case StatusActive, StatusLocked:
		return nil
	default:
		return ErrAccountDisabled
	}
}
