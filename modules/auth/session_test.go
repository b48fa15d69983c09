package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSessionManager(secret string) *SessionManager {
	m := NewSessionManager(SessionConfig{SecretKey: secret, TTL: DefaultSessionTTL})
	m.now = func() time.Time { return testNow }
	return m
}

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

func TestSessionManager_IssueAndVerify(t *testing.T) {
	manager := newTestSessionManager("test-secret-key")

	session, err := manager.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if session.Token == "" {
		t.Fatal("Issue() returned empty token")
	}
	if want := testNow.Add(7 * 24 * time.Hour); !session.Expires.Equal(want) {
		t.Errorf("session.Expires = %v, want %v", session.Expires, want)
	}

	claims := manager.Verify(session.Token)
	if claims == nil {
		t.Fatal("Verify() = nil for a freshly issued token")
	}
	if claims.UserID != "user-123" {
		t.Errorf("claims.UserID = %q, want user-123", claims.UserID)
	}
	if !claims.Expires.Equal(session.Expires) {
		t.Errorf("claims.Expires = %v, want %v", claims.Expires, session.Expires)
	}
	if !claims.IssuedAt.Equal(testNow) {
		t.Errorf("claims.IssuedAt = %v, want %v", claims.IssuedAt, testNow)
	}
}

func TestSessionManager_IssueRequiresUser(t *testing.T) {
	manager := newTestSessionManager("test-secret-key")

	if _, err := manager.Issue(""); err != ErrEmptyUserID {
		t.Errorf("Issue(\"\") error = %v, want %v", err, ErrEmptyUserID)
	}
}

func TestSessionManager_DefaultTTL(t *testing.T) {
	manager := NewSessionManager(SessionConfig{SecretKey: "k"})

	if manager.TTL() != DefaultSessionTTL {
		t.Errorf("TTL() = %v, want %v", manager.TTL(), DefaultSessionTTL)
	}
}

func TestSessionManager_Expiry(t *testing.T) {
	manager := newTestSessionManager("test-secret-key")

	session, err := manager.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{name: "just issued", at: testNow, valid: true},
		{name: "one second before expiry", at: session.Expires.Add(-time.Second), valid: true},
		{name: "at expiry", at: session.Expires, valid: false},
		{name: "a day after expiry", at: session.Expires.Add(24 * time.Hour), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := tt.at
			manager.now = func() time.Time { return at }

			got := manager.Verify(session.Token) != nil
			if got != tt.valid {
				t.Errorf("Verify() valid = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestSessionManager_VerifyRejects(t *testing.T) {
	secret := "test-secret-key"
	manager := newTestSessionManager(secret)

	valid, err := manager.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	future := testNow.Add(time.Hour)
	claimsFor := func(userID string, expires time.Time, exp *jwt.NumericDate) sessionClaims {
		return sessionClaims{
			UserID:  userID,
			Expires: expires,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(testNow),
				ExpiresAt: exp,
			},
		}
	}

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage",
			token: "not-a-jwt",
		},
		{
			name:  "tampered signature",
			token: valid.Token[:len(valid.Token)-4] + "AAAA",
		},
		{
			name:  "signed with another key",
			token: signClaims(t, jwt.SigningMethodHS256, []byte("other-key"), claimsFor("user-123", future, jwt.NewNumericDate(future))),
		},
		{
			name:  "signed with HS512",
			token: signClaims(t, jwt.SigningMethodHS512, []byte(secret), claimsFor("user-123", future, jwt.NewNumericDate(future))),
		},
		{
			name:  "unsigned",
			token: signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, claimsFor("user-123", future, jwt.NewNumericDate(future))),
		},
		{
			name:  "missing exp",
			token: signClaims(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("user-123", future, nil)),
		},
		{
			name:  "expires in the past",
			token: signClaims(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("user-123", testNow.Add(-time.Minute), jwt.NewNumericDate(future))),
		},
		{
			name:  "missing expires",
			token: signClaims(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("user-123", time.Time{}, jwt.NewNumericDate(future))),
		},
		{
			name:  "empty user id",
			token: signClaims(t, jwt.SigningMethodHS256, []byte(secret), claimsFor("", future, jwt.NewNumericDate(future))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if claims := manager.Verify(tt.token); claims != nil {
				t.Errorf("Verify() = %+v, want nil", claims)
			}
		})
	}
}

func TestSessionManager_KeyChangeInvalidatesSessions(t *testing.T) {
	session, err := newTestSessionManager("old-key").Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if claims := newTestSessionManager("new-key").Verify(session.Token); claims != nil {
		t.Errorf("Verify() with rotated key = %+v, want nil", claims)
	}
}

func TestSessionManager_TokenIsCompactHS256(t *testing.T) {
	manager := newTestSessionManager("test-secret-key")

	session, err := manager.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if parts := strings.Split(session.Token, "."); len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(session.Token, &sessionClaims{})
	if err != nil {
		t.Fatalf("ParseUnverified() error = %v", err)
	}
	if alg := parsed.Header["alg"]; alg != "HS256" {
		t.Errorf("alg = %v, want HS256", alg)
	}
}
