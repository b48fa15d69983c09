package task

import (
	"time"

	domain "github.com/example/taskboard/domain/task"
)

// QueryRequest represents a task listing request.
type QueryRequest struct {
	OwnerID string        `json:"owner_id"`
	Filter  domain.Filter `json:"filter"`
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	OwnerID     string          `json:"owner_id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	Priority    domain.Priority `json:"priority"`
	Category    string          `json:"category"`
	Status      domain.Status   `json:"status,omitempty"`
}

// UpdateTaskRequest represents a partial task update. An empty OwnerID
// leaves the update unscoped.
type UpdateTaskRequest struct {
	ID      string       `json:"id"`
	OwnerID string       `json:"owner_id,omitempty"`
	Patch   domain.Patch `json:"patch"`
}

// DeleteTaskRequest represents a single task deletion.
type DeleteTaskRequest struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id,omitempty"`
}

// DeleteTaskResponse represents a single task deletion response.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// BulkDeleteRequest represents a bulk task deletion.
type BulkDeleteRequest struct {
	IDs     []string `json:"ids"`
	OwnerID string   `json:"owner_id,omitempty"`
}

// BulkDeleteResponse reports how many ids were submitted for deletion.
type BulkDeleteResponse struct {
	Count int `json:"count"`
}
