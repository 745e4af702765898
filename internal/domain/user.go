package domain

import "time"

// Role controls which dashboard a signed-in user is routed to.
type Role string

const (
	RoleInternal Role = "internal"
	RoleExternal Role = "external"
)

// ProviderCredentials marks accounts created through email/password sign-up.
// Externally-authenticated accounts carry the provider's own name instead.
const ProviderCredentials = "credentials"

// User is the domain model for anyone who can sign in and submit requests.
// Email and PasswordHash are optional: external identity providers do not
// always return an email, and never supply a password.
type User struct {
	ID           int64
	Name         string
	Email        *string
	PasswordHash *string
	Provider     string
	ProviderID   string
	Role         Role
	CreatedAt    time.Time
}

// EmailValue returns the email or "" when absent.
func (u *User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

// Identity is the verified claim set carried by a session token.
type Identity struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}
