package domain

import "time"

// UserRole enumerates account privilege levels.
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// DefaultWalletBalance is credited to every new account.
const DefaultWalletBalance = 1000.00

// User is the domain model for registered accounts.
// PasswordHash must never appear in any API response; the dto layer
// maps users to external representations explicitly.
type User struct {
	ID            string
	Username      string
	Email         string
	PasswordHash  string
	Role          UserRole
	Wallet        float64
	IsActive      bool
	EmailVerified bool
	LastLogin     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
