package auth

import "time"

type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// Agent is the domain representation of an authenticated back-office user.
// It mirrors the agents table and should not include JSON annotations so it
// can be reused by different presentation layers.
type Agent struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Phone        *string
	Verified     bool
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterRequest contains agent onboarding data supplied by callers.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
}

// LoginRequest contains agent login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
