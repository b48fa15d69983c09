package task

import (
	"time"
)

// Priority is the importance label of a task.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Task represents a task owned by a single user.
type Task struct {
	ID          string     `gorm:"primaryKey;type:text" json:"id"`
	Title       string     `gorm:"not null;type:text" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `gorm:"not null;type:text" json:"priority"`
	Category    string     `gorm:"not null;type:text" json:"category"`
	Status      Status     `gorm:"not null;type:text;default:PENDING" json:"status"`
	UserID      string     `gorm:"index;not null;type:text" json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Stats are the whole-owner dashboard counters.
type Stats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

// Page is one page of a filtered task listing with its aggregates.
type Page struct {
	Tasks      []Task   `json:"tasks"`
	Total      int64    `json:"total"`
	Stats      Stats    `json:"stats"`
	Categories []string `json:"categories"`
}
