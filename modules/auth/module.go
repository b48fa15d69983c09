package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/taskboard/config"
	"github.com/example/taskboard/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/gorm"
)

// AuthModule provides account and session services.
type AuthModule struct {
	cfg     config.Config
	db      *gorm.DB
	redis   *cache.Cache
	service *AuthService
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*AuthModule)(nil)
var _ mono.ServiceProviderModule = (*AuthModule)(nil)
var _ mono.HealthCheckableModule = (*AuthModule)(nil)

// NewModule creates a new AuthModule on a shared database handle.
func NewModule(cfg config.Config, db *gorm.DB, logger types.Logger) *AuthModule {
	return &AuthModule{
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

// Name returns the module name.
func (m *AuthModule) Name() string {
	return "auth"
}

// Start migrates the users table and wires the service.
func (m *AuthModule) Start(ctx context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not configured")
	}

	repo := NewUserRepository(m.db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	var store cache.Store = cache.Nop{}
	if m.cfg.RedisAddr != "" {
		c, err := cache.Connect(ctx, cache.Config{
			Addr:     m.cfg.RedisAddr,
			Password: m.cfg.RedisPassword,
			Prefix:   "taskboard:",
			TTL:      m.cfg.UserCacheTTL,
		})
		if err != nil {
			// Profiles are served from the database alone.
			m.logger.Warn("Profile cache disabled", "addr", m.cfg.RedisAddr, "error", err)
		} else {
			m.redis = c
			store = c
		}
	}

	sessions := NewSessionManager(SessionConfig{
		SecretKey: m.cfg.JWTSecret,
		TTL:       m.cfg.SessionTTL,
	})
	m.service = NewAuthService(repo, NewPasswordHasher(m.cfg.BcryptCost), sessions, store, m.logger)

	m.logger.Info("Auth module started", "cache", m.redis != nil)
	return nil
}

// Stop shuts down the module. The database handle is owned by the caller.
func (m *AuthModule) Stop(_ context.Context) error {
	if m.redis != nil {
		if err := m.redis.Close(); err != nil {
			m.logger.Warn("Failed to close Redis client", "error", err)
		}
	}
	m.logger.Info("Auth module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *AuthModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	details := map[string]any{
		"cache": "disabled",
	}
	if m.redis != nil {
		details["cache"] = "redis"
		details["cache_stats"] = m.redis.Snapshot()
		if err := m.redis.Ping(ctx); err != nil {
			details["cache_error"] = err.Error()
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *AuthModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		"signup",
		json.Unmarshal,
		json.Marshal,
		m.handleSignup,
	); err != nil {
		return fmt.Errorf("failed to register signup service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"login",
		json.Unmarshal,
		json.Marshal,
		m.handleLogin,
	); err != nil {
		return fmt.Errorf("failed to register login service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"verify-session",
		json.Unmarshal,
		json.Marshal,
		m.handleVerifySession,
	); err != nil {
		return fmt.Errorf("failed to register verify-session service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container,
		"get-user",
		json.Unmarshal,
		json.Marshal,
		m.handleGetUser,
	); err != nil {
		return fmt.Errorf("failed to register get-user service: %w", err)
	}

	m.logger.Info("Registered services", "services", "signup, login, verify-session, get-user")
	return nil
}

func (m *AuthModule) handleSignup(ctx context.Context, req SignupRequest, _ *mono.Msg) (SessionResponse, error) {
	user, session, err := m.service.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return SessionResponse{}, err
	}

	return SessionResponse{
		User:    user.Summary(),
		Token:   session.Token,
		Expires: session.Expires,
	}, nil
}

func (m *AuthModule) handleLogin(ctx context.Context, req LoginRequest, _ *mono.Msg) (SessionResponse, error) {
	user, session, err := m.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return SessionResponse{}, err
	}

	return SessionResponse{
		User:    user.Summary(),
		Token:   session.Token,
		Expires: session.Expires,
	}, nil
}

// handleVerifySession never fails: an unusable token is a normal answer.
func (m *AuthModule) handleVerifySession(_ context.Context, req VerifySessionRequest, _ *mono.Msg) (VerifySessionResponse, error) {
	claims := m.service.VerifySession(req.Token)
	if claims == nil {
		return VerifySessionResponse{Valid: false}, nil
	}

	return VerifySessionResponse{
		Valid:    true,
		UserID:   claims.UserID,
		Expires:  claims.Expires,
		IssuedAt: claims.IssuedAt,
	}, nil
}

func (m *AuthModule) handleGetUser(ctx context.Context, req GetUserRequest, _ *mono.Msg) (GetUserResponse, error) {
	user, err := m.service.GetProfile(ctx, req.UserID)
	if err != nil {
		return GetUserResponse{}, err
	}

	return GetUserResponse{User: *user}, nil
}
