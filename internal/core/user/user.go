package user

import "time"

const (
	RoleParticipant = "participant"
	RoleOperator    = "operator"
	RoleAdmin       = "admin"
)

// User is the in-process view of an authenticated account, carried in the
// request context by the auth middleware.
type User struct {
	ID         int64
	AnweshaID  string
	Email      string
	FirstName  string
	LastName   string
	Role       string
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsOperator reports whether the account may run check-in scanners.
// Admins implicitly may.
func (u *User) IsOperator() bool {
	return u != nil && (u.Role == RoleOperator || u.Role == RoleAdmin)
}
