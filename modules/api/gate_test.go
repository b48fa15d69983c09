package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	domain "github.com/example/taskboard/domain/user"
	"github.com/go-monolith/mono"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageGate(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		token        string
		wantRedirect string
		wantCleared  bool
	}{
		{
			name:         "no session on a private page",
			path:         "/",
			wantRedirect: "/login",
		},
		{
			name:         "no session on a nested private page",
			path:         "/settings/profile",
			wantRedirect: "/login",
		},
		{
			name: "no session on login",
			path: "/login",
		},
		{
			name: "no session on signup",
			path: "/signup",
		},
		{
			name:         "valid session on login",
			path:         "/login",
			token:        validToken,
			wantRedirect: "/",
		},
		{
			name:         "valid session on signup",
			path:         "/signup",
			token:        validToken,
			wantRedirect: "/",
		},
		{
			name:  "valid session on a private page",
			path:  "/",
			token: validToken,
		},
		{
			name:         "invalid session on a private page",
			path:         "/",
			token:        "forged",
			wantRedirect: "/login",
			wantCleared:  true,
		},
		{
			name:         "invalid session on login",
			path:         "/login",
			token:        "forged",
			wantRedirect: "/login",
			wantCleared:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, nil, nil, testAppOptions{webRoot: newWebRoot(t)})

			resp, _ := do(t, app, newRequest(http.MethodGet, tt.path, "", tt.token))

			if tt.wantRedirect != "" {
				assert.Equal(t, http.StatusFound, resp.StatusCode)
				assert.Equal(t, tt.wantRedirect, resp.Header.Get("Location"))
			} else {
				assert.NotEqual(t, http.StatusFound, resp.StatusCode)
				assert.Empty(t, resp.Header.Get("Location"))
			}

			cookie := sessionCookie(resp)
			if tt.wantCleared {
				require.NotNil(t, cookie, "expected the session cookie to be cleared")
				assert.Empty(t, cookie.Value)
				assert.Equal(t, int64(0), cookie.Expires.Unix())
			} else {
				assert.Nil(t, cookie)
			}
		})
	}
}

func TestPageGate_ServesPrivatePageWithSession(t *testing.T) {
	app := newTestApp(t, nil, nil, testAppOptions{webRoot: newWebRoot(t)})

	resp, body := do(t, app, newRequest(http.MethodGet, "/", "", validToken))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Dashboard")
}

func TestPageGate_VerificationFailureRedirects(t *testing.T) {
	authPort := &mockAuthPort{
		verifySessionFunc: func(context.Context, string) (*domain.Claims, error) {
			return nil, errors.New("nats: timeout")
		},
	}
	app := newTestApp(t, authPort, nil, testAppOptions{})

	resp, _ := do(t, app, newRequest(http.MethodGet, "/", "", validToken))

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestPageGate_SkipsAPIAndHealth(t *testing.T) {
	app := newTestApp(t, nil, nil, testAppOptions{})

	resp, body := do(t, app, newRequest(http.MethodGet, "/api/tasks", "", ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, string(body))

	resp, _ = do(t, app, newRequest(http.MethodGet, "/health", "", ""))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

type stubReporter struct {
	name   string
	status mono.HealthStatus
}

func (s stubReporter) Name() string                             { return s.name }
func (s stubReporter) Health(context.Context) mono.HealthStatus { return s.status }

func TestHealthCheck(t *testing.T) {
	healthy := stubReporter{name: "auth", status: mono.HealthStatus{Healthy: true, Message: "operational"}}
	broken := stubReporter{name: "task", status: mono.HealthStatus{Healthy: false, Message: "database ping failed"}}

	app := newTestApp(t, nil, nil, testAppOptions{reports: []HealthReporter{healthy}})
	resp, body := do(t, app, newRequest(http.MethodGet, "/health", "", ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	health := decode[HealthResponse](t, body)
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.Modules["auth"].Healthy)
	assert.True(t, health.Modules["api"].Healthy)

	app = newTestApp(t, nil, nil, testAppOptions{reports: []HealthReporter{healthy, broken}})
	resp, body = do(t, app, newRequest(http.MethodGet, "/health", "", ""))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	health = decode[HealthResponse](t, body)
	assert.Equal(t, "unhealthy", health.Status)
	assert.Equal(t, "database ping failed", health.Modules["task"].Message)
}
