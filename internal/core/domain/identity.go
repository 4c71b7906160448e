package domain

import "time"

// Role is the dashboard-level role of an authenticated identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Identity is the authenticated principal attached to a session.
type Identity struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Email      string  `json:"email" yaml:"email"`
	Role       Role    `json:"role" yaml:"role"`
	AvatarURL  string  `json:"avatar" yaml:"avatar"`
	EmployeeID *string `json:"employeeId,omitempty" yaml:"employeeId"` // Directory record of a normal user, nil for service admins
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Credential is one row of the fixed login table.
type Credential struct {
	Identity
	PasswordHash string `json:"-"`
}

// Session binds a session id (the token's jti) to the identity that logged in.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Session   Session
}
