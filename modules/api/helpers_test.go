package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/taskboard/config"
	taskdomain "github.com/example/taskboard/domain/task"
	domain "github.com/example/taskboard/domain/user"
	"github.com/example/taskboard/modules/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const (
	validToken = "valid-token"
	testUserID = "user-123"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

// mockAuthPort implements auth.AuthPort for testing
type mockAuthPort struct {
	signupFunc        func(ctx context.Context, name, email, password string) (*domain.Summary, *domain.Session, error)
	loginFunc         func(ctx context.Context, email, password string) (*domain.Summary, *domain.Session, error)
	verifySessionFunc func(ctx context.Context, token string) (*domain.Claims, error)
	getUserFunc       func(ctx context.Context, userID string) (*domain.Summary, error)
}

func (m *mockAuthPort) Signup(ctx context.Context, name, email, password string) (*domain.Summary, *domain.Session, error) {
	if m.signupFunc != nil {
		return m.signupFunc(ctx, name, email, password)
	}
	return nil, nil, errors.New("not implemented")
}

func (m *mockAuthPort) Login(ctx context.Context, email, password string) (*domain.Summary, *domain.Session, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, nil, errors.New("not implemented")
}

// VerifySession accepts validToken unless verifySessionFunc is set.
func (m *mockAuthPort) VerifySession(ctx context.Context, token string) (*domain.Claims, error) {
	if m.verifySessionFunc != nil {
		return m.verifySessionFunc(ctx, token)
	}
	if token == validToken {
		return &domain.Claims{UserID: testUserID, Expires: time.Now().Add(time.Hour)}, nil
	}
	return nil, nil
}

func (m *mockAuthPort) GetUser(ctx context.Context, userID string) (*domain.Summary, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

// mockTaskPort implements task.TaskPort for testing
type mockTaskPort struct {
	queryFunc      func(ctx context.Context, owner string, filter taskdomain.Filter) (*taskdomain.Page, error)
	createFunc     func(ctx context.Context, req task.CreateTaskRequest) (*taskdomain.Task, error)
	updateFunc     func(ctx context.Context, id, owner string, patch taskdomain.Patch) (*taskdomain.Task, error)
	deleteFunc     func(ctx context.Context, id, owner string) error
	deleteManyFunc func(ctx context.Context, ids []string, owner string) (int, error)
}

func (m *mockTaskPort) Query(ctx context.Context, owner string, filter taskdomain.Filter) (*taskdomain.Page, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, owner, filter)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) Create(ctx context.Context, req task.CreateTaskRequest) (*taskdomain.Task, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) Update(ctx context.Context, id, owner string, patch taskdomain.Patch) (*taskdomain.Task, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, owner, patch)
	}
	return nil, errors.New("not implemented")
}

func (m *mockTaskPort) Delete(ctx context.Context, id, owner string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, owner)
	}
	return errors.New("not implemented")
}

func (m *mockTaskPort) DeleteMany(ctx context.Context, ids []string, owner string) (int, error) {
	if m.deleteManyFunc != nil {
		return m.deleteManyFunc(ctx, ids, owner)
	}
	return 0, errors.New("not implemented")
}

type testAppOptions struct {
	production       bool
	enforceOwnership bool
	webRoot          string
	reports          []HealthReporter
}

func newTestApp(t *testing.T, authPort *mockAuthPort, taskPort *mockTaskPort, opts testAppOptions) *fiber.App {
	t.Helper()
	if authPort == nil {
		authPort = &mockAuthPort{}
	}
	if taskPort == nil {
		taskPort = &mockTaskPort{}
	}

	cfg := config.Default()
	cfg.Production = opts.production
	cfg.EnforceTaskOwnership = opts.enforceOwnership
	cfg.WebRoot = opts.webRoot

	m := NewModule(cfg, &mockLogger{}, opts.reports...)
	m.authPort = authPort
	m.taskPort = taskPort

	h := NewHandlers(authPort, taskPort, &mockLogger{}, HandlerOptions{
		SecureCookies:    cfg.Production,
		EnforceOwnership: cfg.EnforceTaskOwnership,
	})
	m.app = m.newApp(h)
	return m.app
}

// newWebRoot creates a static web root with an index page.
func newWebRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Dashboard</h1>"), 0o644))
	return dir
}

func newRequest(method, target, body, token string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", body)
	return v
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	return nil
}
