package api

import (
	"context"
	"fmt"
	"time"

	"github.com/example/taskboard/config"
	"github.com/example/taskboard/modules/auth"
	"github.com/example/taskboard/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// HealthReporter is a module whose health is included in /health.
type HealthReporter interface {
	Name() string
	Health(ctx context.Context) mono.HealthStatus
}

// APIModule is the HTTP API module.
type APIModule struct {
	cfg      config.Config
	app      *fiber.App
	authPort auth.AuthPort
	taskPort task.TaskPort
	reports  []HealthReporter
	logger   types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule. The given modules are reported by /health.
func NewModule(cfg config.Config, logger types.Logger, reports ...HealthReporter) *APIModule {
	return &APIModule{
		cfg:     cfg,
		reports: reports,
		logger:  logger,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authPort = auth.NewAuthAdapter(container)
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authPort == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskPort == nil {
		return fmt.Errorf("task dependency not set")
	}

	handlers := NewHandlers(m.authPort, m.taskPort, m.logger, HandlerOptions{
		SecureCookies:    m.cfg.Production,
		EnforceOwnership: m.cfg.EnforceTaskOwnership,
	})
	m.app = m.newApp(handlers)

	addr := fmt.Sprintf(":%d", m.cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			errCh <- err
		}
	}()

	// Catch immediate startup errors such as a port already in use.
	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
	}

	m.logger.Info("HTTP server started",
		"addr", addr,
		"secure_cookies", m.cfg.Production,
		"enforce_ownership", m.cfg.EnforceTaskOwnership)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server")
	if err := m.app.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.cfg.Port,
		},
	}
}

// newApp builds the Fiber application with its middleware and routes.
func (m *APIModule) newApp(h *Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "taskboard",
		DisableStartupMessage: true,
		ErrorHandler:          m.errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	app.Get("/health", m.healthCheck)

	app.Use(h.PageGate)

	api := app.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", h.Signup)
	authRoutes.Post("/login", h.Login)
	authRoutes.Get("/me", h.Me)
	authRoutes.Post("/logout", h.Logout)

	tasks := api.Group("/tasks")
	tasks.Get("/", h.ListTasks)
	tasks.Post("/", h.CreateTask)
	// Registered before /:id so that "bulk" is not taken as an id.
	tasks.Delete("/bulk", h.BulkDeleteTasks)
	tasks.Patch("/:id", h.UpdateTask)
	tasks.Delete("/:id", h.DeleteTask)

	if m.cfg.WebRoot != "" {
		app.Static("/", m.cfg.WebRoot)
	}

	return app
}

// healthCheck reports the health of this module and the registered reporters.
func (m *APIModule) healthCheck(c *fiber.Ctx) error {
	resp := HealthResponse{
		Status:  "healthy",
		Modules: make(map[string]ModuleHealth, len(m.reports)+1),
	}

	statuses := map[string]mono.HealthStatus{m.Name(): m.Health(c.UserContext())}
	for _, r := range m.reports {
		statuses[r.Name()] = r.Health(c.UserContext())
	}
	for name, status := range statuses {
		resp.Modules[name] = ModuleHealth{
			Healthy: status.Healthy,
			Message: status.Message,
			Details: status.Details,
		}
		if !status.Healthy {
			resp.Status = "unhealthy"
		}
	}

	if resp.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// errorHandler handles errors returned by handlers and the framework.
func (m *APIModule) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		m.logger.Error("HTTP error", "code", code, "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
