package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/taskboard/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the interface for authentication operations.
// This is the port that other modules use to access auth functionality.
type AuthPort interface {
	Signup(ctx context.Context, name, email, password string) (*domain.Summary, *domain.Session, error)
	Login(ctx context.Context, email, password string) (*domain.Summary, *domain.Session, error)
	// VerifySession returns nil claims and a nil error for an invalid token.
	VerifySession(ctx context.Context, token string) (*domain.Claims, error)
	GetUser(ctx context.Context, userID string) (*domain.Summary, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

var _ AuthPort = (*AuthAdapter)(nil)

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// Signup creates an account and returns its first session.
func (a *AuthAdapter) Signup(ctx context.Context, name, email, password string) (*domain.Summary, *domain.Session, error) {
	req := SignupRequest{Name: name, Email: email, Password: password}
	var resp SessionResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"signup",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, nil, remoteError("signup", err)
	}

	return &resp.User, &domain.Session{Token: resp.Token, Expires: resp.Expires}, nil
}

// Login authenticates a user and returns a new session.
func (a *AuthAdapter) Login(ctx context.Context, email, password string) (*domain.Summary, *domain.Session, error) {
	req := LoginRequest{Email: email, Password: password}
	var resp SessionResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"login",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, nil, remoteError("login", err)
	}

	return &resp.User, &domain.Session{Token: resp.Token, Expires: resp.Expires}, nil
}

// VerifySession checks a session token.
func (a *AuthAdapter) VerifySession(ctx context.Context, token string) (*domain.Claims, error) {
	req := VerifySessionRequest{Token: token}
	var resp VerifySessionResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"verify-session",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("verify-session request failed: %w", err)
	}

	if !resp.Valid {
		return nil, nil
	}

	return &domain.Claims{
		UserID:   resp.UserID,
		Expires:  resp.Expires,
		IssuedAt: resp.IssuedAt,
	}, nil
}

// GetUser retrieves the public profile of a user.
func (a *AuthAdapter) GetUser(ctx context.Context, userID string) (*domain.Summary, error) {
	req := GetUserRequest{UserID: userID}
	var resp GetUserResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-user",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, remoteError("get-user", err)
	}

	return &resp.User, nil
}

// remoteError restores the sentinel behind an error that crossed the service
// boundary, where only its message survives.
func remoteError(service string, err error) error {
	msg := err.Error()
	for _, known := range []error{ErrInvalidCredentials, ErrUserExists, ErrUserNotFound, ErrPasswordTooLong} {
		if strings.Contains(msg, known.Error()) {
			return known
		}
	}
	return fmt.Errorf("%s request failed: %w", service, err)
}
