package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/salestrack/internal/domain/task"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{task.ErrTaskNotFound, "TASK_NOT_FOUND"},
		{fmt.Errorf("wrapped: %w", task.ErrInvalidPriority), "INVALID_PRIORITY"},
		{task.ErrInvalidStatus, "INVALID_STATUS"},
		{task.ErrInvalidInput, "INVALID_INPUT"},
		{task.ErrNothingToUndo, "NOTHING_TO_UNDO"},
		{task.ErrClosed, "UNAVAILABLE"},
	}

	for _, tt := range tests {
		mapped := MapError(tt.err)
		var apiErr *APIError
		require.True(t, errors.As(mapped, &apiErr), "expected APIError for %v", tt.err)
		require.Equal(t, tt.code, apiErr.Code)
		require.ErrorIs(t, mapped, tt.err)
	}
}

func TestMapError_PassThrough(t *testing.T) {
	require.NoError(t, MapError(nil))

	other := errors.New("disk on fire")
	require.Same(t, other, MapError(other))
}
