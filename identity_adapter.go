package auth

// UserIdentity is a point-in-time snapshot of the identity fields a token is
// issued for. It copies the values out of the user record so later mutations
// (lockout bookkeeping, status changes) cannot leak into claims built from it.
type UserIdentity struct {
	id       string
	username string
	email    string
	role     Role
}

var _ Identity = UserIdentity{}

// NewIdentityFromUser snapshots the given user into an Identity. Returns nil
// for a nil user.
func NewIdentityFromUser(user *User) Identity {
	if user == nil {
		return nil
	}
	return UserIdentity{
		id:       user.ID.String(),
		username: user.Username,
		email:    user.Email,
		role:     user.Role,
	}
}

func (u UserIdentity) ID() string       { return u.id }
func (u UserIdentity) Username() string { return u.username }
func (u UserIdentity) Email() string    { return u.email }
func (u UserIdentity) Role() string     { return u.role }
