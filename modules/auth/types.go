package auth

import (
	"time"

	domain "github.com/example/taskboard/domain/user"
)

// SignupRequest represents a user signup request.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned by signup and login: the user and a fresh session.
type SessionResponse struct {
	User    domain.Summary `json:"user"`
	Token   string         `json:"token"`
	Expires time.Time      `json:"expires"`
}

// VerifySessionRequest represents a session verification request.
type VerifySessionRequest struct {
	Token string `json:"token"`
}

// VerifySessionResponse represents a session verification response.
// Invalid sessions are reported with Valid false and no reason.
type VerifySessionResponse struct {
	Valid    bool      `json:"valid"`
	UserID   string    `json:"user_id,omitempty"`
	Expires  time.Time `json:"expires,omitzero"`
	IssuedAt time.Time `json:"issued_at,omitzero"`
}

// GetUserRequest represents a get user request.
type GetUserRequest struct {
	UserID string `json:"user_id"`
}

// GetUserResponse represents a get user response.
type GetUserResponse struct {
	User domain.Summary `json:"user"`
}
