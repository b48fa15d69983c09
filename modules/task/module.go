package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/taskboard/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/gorm"
)

// TaskModule provides task storage and the task query engine.
type TaskModule struct {
	db      *gorm.DB
	service *Service
	logger  types.Logger
}

// Compile-time interface checks.
var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

// NewModule creates a new TaskModule on a shared database handle.
func NewModule(db *gorm.DB, logger types.Logger) *TaskModule {
	return &TaskModule{
		db:     db,
		logger: logger,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// Start runs migrations and wires the service.
func (m *TaskModule) Start(_ context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not configured")
	}

	repo := NewRepository(m.db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	service, err := NewService(repo)
	if err != nil {
		return err
	}
	m.service = service

	m.logger.Info("Task module started")
	return nil
}

// Stop shuts down the module. The database handle is owned by the caller.
func (m *TaskModule) Stop(_ context.Context) error {
	m.logger.Info("Task module stopped")
	return nil
}

// Health performs a health check on the task module.
func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil || m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "module not started",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "query", json.Unmarshal, json.Marshal, m.handleQuery,
	); err != nil {
		return fmt.Errorf("failed to register query service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "bulk-delete", json.Unmarshal, json.Marshal, m.handleBulkDelete,
	); err != nil {
		return fmt.Errorf("failed to register bulk-delete service: %w", err)
	}

	m.logger.Info("Registered services", "services", "query, create, update, delete, bulk-delete")
	return nil
}

func (m *TaskModule) handleQuery(ctx context.Context, req QueryRequest, _ *mono.Msg) (domain.Page, error) {
	page, err := m.service.Query(ctx, req.OwnerID, req.Filter)
	if err != nil {
		return domain.Page{}, err
	}
	return *page, nil
}

func (m *TaskModule) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	task, err := m.service.Create(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

func (m *TaskModule) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (domain.Task, error) {
	task, err := m.service.Update(ctx, req.ID, req.OwnerID, req.Patch)
	if err != nil {
		return domain.Task{}, err
	}
	return *task, nil
}

func (m *TaskModule) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.ID, req.OwnerID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

func (m *TaskModule) handleBulkDelete(ctx context.Context, req BulkDeleteRequest, _ *mono.Msg) (BulkDeleteResponse, error) {
	count, err := m.service.DeleteMany(ctx, req.IDs, req.OwnerID)
	if err != nil {
		return BulkDeleteResponse{}, err
	}
	return BulkDeleteResponse{Count: count}, nil
}
