package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidInput indicates invalid task input.
	ErrInvalidInput = errors.New("invalid task input")
	// ErrInvalidPriority indicates an unknown priority value.
	ErrInvalidPriority = errors.New("invalid task priority")
	// ErrInvalidStatus indicates an unknown status value.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrNothingToUndo indicates the undo buffer is empty or expired.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrInvalidGradeScale indicates grade thresholds are not strictly descending.
	ErrInvalidGradeScale = errors.New("invalid grade scale")
	// ErrClosed indicates the store has been shut down.
	ErrClosed = errors.New("task store closed")
)
