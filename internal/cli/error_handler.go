package cli

import (
	"fmt"

	"todo-store/internal/errors"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages for AppErrors and wraps the rest
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleLookup is Handle for commands that address a task by id. A missing
// task gets a hint on how to find valid ids.
func (eh *ErrorHandler) HandleLookup(operation, id string, err error) error {
	if eh.IsNotFoundError(err) {
		return fmt.Errorf("failed to %s: no task with id %s (run \"todo all\" to list ids)", operation, id)
	}
	return eh.Handle(operation, err)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsNotFound(err)
}
