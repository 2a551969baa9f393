package task

import (
	"context"

	"github.com/rpggio/salestrack/internal/domain/activity"
)

// SlotRepository persists the whole task list in a single named slot.
type SlotRepository interface {
	Load(ctx context.Context) ([]Task, bool, error)
	Save(ctx context.Context, tasks []Task) error
}

// ActivityRepository logs task activities.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
