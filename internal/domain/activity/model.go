package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeTaskCreated  ActivityType = "task_created"
	TypeTaskUpdated  ActivityType = "task_updated"
	TypeTaskDeleted  ActivityType = "task_deleted"
	TypeTaskRestored ActivityType = "task_restored"
	TypeUndoExpired  ActivityType = "undo_expired"
	TypeTasksLoaded  ActivityType = "tasks_loaded"
	TypeTasksSeeded  ActivityType = "tasks_seeded"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	TaskID       *string      `json:"task_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
