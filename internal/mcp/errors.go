package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/salestrack/internal/domain/task"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	cause        error
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Call list_tasks for valid IDs", cause: err}
	case errors.Is(err, task.ErrInvalidPriority):
		return &APIError{Code: "INVALID_PRIORITY", Message: err.Error(), RecoveryHint: "Use High, Medium or Low", cause: err}
	case errors.Is(err, task.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: err.Error(), RecoveryHint: "Use To Do, In Progress or Done", cause: err}
	case errors.Is(err, task.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid task input", RecoveryHint: "A non-empty title and id are required", cause: err}
	case errors.Is(err, task.ErrNothingToUndo):
		return &APIError{Code: "NOTHING_TO_UNDO", Message: "no recently deleted task", RecoveryHint: "Undo is only available shortly after delete_task", cause: err}
	case errors.Is(err, task.ErrClosed):
		return &APIError{Code: "UNAVAILABLE", Message: "task store is shutting down", cause: err}
	default:
		return err
	}
}
