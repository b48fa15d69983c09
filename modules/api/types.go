package api

import (
	domain "github.com/example/taskboard/domain/user"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FlattenedErrors groups validation messages into form-level and
// field-level lists.
type FlattenedErrors struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// ValidationErrorResponse represents a 4xx response with validation messages.
type ValidationErrorResponse struct {
	Error FlattenedErrors `json:"error"`
}

// SignupRequest represents a signup request body.
type SignupRequest struct {
	Name     string `json:"name" validate:"min=2"`
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"min=6,max=72"`
}

// LoginRequest represents a login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"email"`
	Password string `json:"password" validate:"required,max=72"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Success bool           `json:"success"`
	User    domain.Summary `json:"user"`
}

// MeResponse represents the current user. User is null when unauthenticated.
type MeResponse struct {
	User *domain.Summary `json:"user"`
}

// SuccessResponse represents a bare acknowledgement.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CreateTaskRequest represents a task creation request body.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    string  `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	Category    string  `json:"category" validate:"required"`
	Status      string  `json:"status" validate:"omitempty,oneof=PENDING COMPLETED"`
}

// BulkDeleteRequest represents a bulk deletion request body.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// BulkDeleteResponse represents a bulk deletion response.
type BulkDeleteResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// ModuleHealth is the health of one module.
type ModuleHealth struct {
	Healthy bool           `json:"healthy"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthResponse represents the health endpoint response.
type HealthResponse struct {
	Status  string                  `json:"status"`
	Modules map[string]ModuleHealth `json:"modules"`
}
