package domain

import "time"

// User is the persisted account record. The JSON tags double as the on-disk
// schema of the file store, which predates this service and must stay stable.
type User struct {
	ID                  string    `json:"user_id"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"password_hash"`
	Role                string    `json:"role"`
	CreatedAt           time.Time `json:"created_at"`
	IsActive            bool      `json:"is_active"`
	FailedLoginAttempts int       `json:"failed_login_attempts"`
	MFAEnabled          bool      `json:"mfa_enabled"`
}

// PublicUser is the externally visible projection of a User.
// It can never carry the password hash.
type PublicUser struct {
	ID    string
	Email string
	Role  string
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, Role: u.Role}
}
