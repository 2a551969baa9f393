package repository

import (
	"context"

	"github.com/rpggio/salestrack/internal/domain/activity"
	"github.com/rpggio/salestrack/internal/domain/task"
)

// TaskSlotRepository persists the serialized task list in one named slot
type TaskSlotRepository interface {
	Load(ctx context.Context) ([]task.Task, bool, error)
	Save(ctx context.Context, tasks []task.Task) error
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
	List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}
