package mocks

import (
	"context"

	"github.com/rpggio/salestrack/internal/domain/activity"
	"github.com/rpggio/salestrack/internal/domain/task"
	"github.com/stretchr/testify/mock"
)

// TaskSlotRepository is a mock for repository.TaskSlotRepository.
type TaskSlotRepository struct {
	mock.Mock
}

func (m *TaskSlotRepository) Load(ctx context.Context) ([]task.Task, bool, error) {
	args := m.Called(ctx)
	if tasks, ok := args.Get(0).([]task.Task); ok {
		return tasks, args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *TaskSlotRepository) Save(ctx context.Context, tasks []task.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
