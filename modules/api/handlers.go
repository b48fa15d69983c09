package api

import (
	"github.com/example/taskboard/modules/auth"
	"github.com/example/taskboard/modules/task"
	"github.com/go-monolith/mono/pkg/types"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth             auth.AuthPort
	tasks            task.TaskPort
	validator        *Validator
	logger           types.Logger
	secureCookies    bool
	enforceOwnership bool
}

// HandlerOptions configures Handlers.
type HandlerOptions struct {
	// SecureCookies marks the session cookie Secure.
	SecureCookies bool
	// EnforceOwnership requires a session for task updates and deletes and
	// restricts them to the caller's tasks.
	EnforceOwnership bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, taskPort task.TaskPort, logger types.Logger, opts HandlerOptions) *Handlers {
	return &Handlers{
		auth:             authPort,
		tasks:            taskPort,
		validator:        NewValidator(),
		logger:           logger,
		secureCookies:    opts.SecureCookies,
		enforceOwnership: opts.EnforceOwnership,
	}
}
