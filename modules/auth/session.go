package auth

import (
	"errors"
	"fmt"
	"time"

	domain "github.com/example/taskboard/domain/user"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of an issued session.
const DefaultSessionTTL = 7 * 24 * time.Hour

// ErrEmptyUserID is returned when issuing a session without a user.
var ErrEmptyUserID = errors.New("user id is required")

// SessionConfig holds the signing settings for session tokens.
type SessionConfig struct {
	SecretKey string
	TTL       time.Duration
}

// sessionClaims is the signed payload. Expires duplicates exp as an absolute
// timestamp so clients can read it without decoding registered claims.
type sessionClaims struct {
	UserID  string    `json:"userId"`
	Expires time.Time `json:"expires"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies stateless HS256 session tokens with a
// single key. Changing the key invalidates every outstanding session.
type SessionManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSessionManager creates a SessionManager from config.
func NewSessionManager(config SessionConfig) *SessionManager {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		key: []byte(config.SecretKey),
		ttl: ttl,
		now: time.Now,
	}
}

// Issue signs a new session for userID that expires after the configured TTL.
func (m *SessionManager) Issue(userID string) (*domain.Session, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}

	now := m.now()
	expires := now.Add(m.ttl)
	claims := sessionClaims{
		UserID:  userID,
		Expires: expires,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	return &domain.Session{
		Token:   token,
		Expires: expires,
	}, nil
}

// Verify returns the claims of a valid token, or nil when the token is
// malformed, signed with another key or algorithm, or expired.
func (m *SessionManager) Verify(token string) *domain.Claims {
	if token == "" {
		return nil
	}

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(*jwt.Token) (any, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.UserID == "" {
		return nil
	}
	if claims.Expires.IsZero() || !m.now().Before(claims.Expires) {
		return nil
	}

	var issuedAt time.Time
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	return &domain.Claims{
		UserID:   claims.UserID,
		Expires:  claims.Expires,
		IssuedAt: issuedAt,
	}
}

// TTL returns the session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}
