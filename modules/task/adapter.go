package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/taskboard/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the task operations available to other modules.
// An empty owner on update and delete leaves the operation unscoped.
type TaskPort interface {
	Query(ctx context.Context, owner string, filter domain.Filter) (*domain.Page, error)
	Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error)
	Update(ctx context.Context, id, owner string, patch domain.Patch) (*domain.Task, error)
	Delete(ctx context.Context, id, owner string) error
	DeleteMany(ctx context.Context, ids []string, owner string) (int, error)
}

// TaskAdapter implements TaskPort using the service container.
type TaskAdapter struct {
	container mono.ServiceContainer
}

var _ TaskPort = (*TaskAdapter)(nil)

// NewTaskAdapter creates a new TaskAdapter.
func NewTaskAdapter(container mono.ServiceContainer) *TaskAdapter {
	return &TaskAdapter{
		container: container,
	}
}

// Query lists the owner's tasks.
func (a *TaskAdapter) Query(ctx context.Context, owner string, filter domain.Filter) (*domain.Page, error) {
	req := QueryRequest{OwnerID: owner, Filter: filter}
	var resp domain.Page

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"query",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, remoteError("query", err)
	}

	if resp.Tasks == nil {
		resp.Tasks = []domain.Task{}
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	return &resp, nil
}

// Create stores a new task.
func (a *TaskAdapter) Create(ctx context.Context, req CreateTaskRequest) (*domain.Task, error) {
	var resp domain.Task

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, remoteError("create", err)
	}
	return &resp, nil
}

// Update applies a partial update to one task.
func (a *TaskAdapter) Update(ctx context.Context, id, owner string, patch domain.Patch) (*domain.Task, error) {
	req := UpdateTaskRequest{ID: id, OwnerID: owner, Patch: patch}
	var resp domain.Task

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"update",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, remoteError("update", err)
	}
	return &resp, nil
}

// Delete removes one task.
func (a *TaskAdapter) Delete(ctx context.Context, id, owner string) error {
	req := DeleteTaskRequest{ID: id, OwnerID: owner}
	var resp DeleteTaskResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return remoteError("delete", err)
	}
	return nil
}

// DeleteMany removes a set of tasks.
func (a *TaskAdapter) DeleteMany(ctx context.Context, ids []string, owner string) (int, error) {
	req := BulkDeleteRequest{IDs: ids, OwnerID: owner}
	var resp BulkDeleteResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"bulk-delete",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return 0, remoteError("bulk-delete", err)
	}
	return resp.Count, nil
}

// remoteError restores the sentinel behind an error that crossed the service
// boundary, where only its message survives.
func remoteError(service string, err error) error {
	msg := err.Error()
	for _, known := range []error{ErrTaskNotFound, ErrInvalidTask, ErrOwnerRequired} {
		if strings.Contains(msg, known.Error()) {
			return fmt.Errorf("%w: %s", known, msg)
		}
	}
	return fmt.Errorf("%s request failed: %w", service, err)
}
