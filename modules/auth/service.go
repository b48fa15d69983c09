package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/modules/cache"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidCredentials is returned when login credentials are invalid.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles authentication business logic.
type AuthService struct {
	repo     *UserRepository
	hasher   *PasswordHasher
	sessions *SessionManager
	cache    cache.Store
	group    singleflight.Group
	logger   types.Logger
}

// NewAuthService creates a new AuthService. A nil store disables profile caching.
func NewAuthService(repo *UserRepository, hasher *PasswordHasher, sessions *SessionManager, store cache.Store, logger types.Logger) *AuthService {
	if store == nil {
		store = cache.Nop{}
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
		cache:    store,
		logger:   logger,
	}
}

// Signup creates a new account and opens a session for it.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, *domain.Session, error) {
	email = strings.TrimSpace(email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, nil, ErrUserExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A concurrent signup for the same email loses on the unique index.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return nil, nil, ErrUserExists
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("User signed up", "user_id", user.ID)
	return user, session, nil
}

// Login authenticates a user and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	// A fresh login re-reads the profile row on the next lookup.
	if err := s.cache.Delete(ctx, profileKey(user.ID)); err != nil {
		s.logger.Warn("Profile cache eviction failed", "user_id", user.ID, "error", err)
	}

	session, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// VerifySession returns the claims of a valid session token, or nil.
func (s *AuthService) VerifySession(token string) *domain.Claims {
	return s.sessions.Verify(token)
}

// GetProfile returns the public view of a user. Lookups go through the
// profile cache and concurrent misses for one user share a database read.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.Summary, error) {
	key := profileKey(userID)

	var cached domain.Summary
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("Profile cache read failed", "user_id", userID, "error", err)
	}
	if found {
		return &cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		user, err := s.repo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		summary := user.Summary()
		if err := s.cache.Set(ctx, key, summary); err != nil {
			s.logger.Warn("Profile cache write failed", "user_id", userID, "error", err)
		}
		return &summary, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Summary), nil
}

func profileKey(userID string) string {
	return "user:" + userID
}
