package dto

import "time"

type RegisterResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
}

type LogoutResponse struct {
	Message string `json:"message"`
}

// UserDetail is the admin/lookup view of a stored user. The password hash
// never crosses the transport boundary.
type UserDetail struct {
	UserID              string    `json:"user_id"`
	Email               string    `json:"email"`
	Role                string    `json:"role"`
	CreatedAt           time.Time `json:"created_at"`
	IsActive            bool      `json:"is_active"`
	FailedLoginAttempts int       `json:"failed_login_attempts"`
	MFAEnabled          bool      `json:"mfa_enabled"`
}

type TokenUserInfo struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type ProtectedResponse struct {
	Message  string        `json:"message"`
	UserInfo TokenUserInfo `json:"user_info"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
