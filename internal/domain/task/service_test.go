package task_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rpggio/salestrack/internal/domain/activity"
	"github.com/rpggio/salestrack/internal/domain/task"
	"github.com/rpggio/salestrack/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memorySlot is an in-memory task slot that records every save.
type memorySlot struct {
	mu      sync.Mutex
	stored  []task.Task
	found   bool
	loadErr error
	saveErr error
	saves   int
	release chan struct{}
}

func (m *memorySlot) Load(ctx context.Context) ([]task.Task, bool, error) {
	if m.release != nil {
		<-m.release
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, false, m.loadErr
	}
	return append([]task.Task(nil), m.stored...), m.found, nil
}

func (m *memorySlot) Save(ctx context.Context, tasks []task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = append([]task.Task(nil), tasks...)
	m.found = true
	return nil
}

func (m *memorySlot) snapshot() ([]task.Task, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]task.Task(nil), m.stored...), m.saves
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, slot task.SlotRepository) *task.Service {
	t.Helper()
	svc := task.NewService(slot, nil, nil, task.Options{
		Now:         fixedNow,
		UndoTimeout: time.Minute,
	})
	t.Cleanup(svc.Close)
	return svc
}

func TestService_LoadSeedsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{}
	svc := newTestService(t, slot)

	require.NoError(t, svc.Load(ctx))

	view, err := svc.View(ctx, task.Filter{})
	require.NoError(t, err)
	require.Len(t, view.Tasks, len(task.SeedTasks(fixedNow())))

	stored, saves := slot.snapshot()
	require.Equal(t, 1, saves, "seed list should be written back")
	require.Len(t, stored, len(view.Tasks))
}

func TestService_LoadUsesStoredList(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{
		found:  true,
		stored: []task.Task{{ID: "x", Title: "stored", Revenue: 200, TimeTaken: 4, ROI: 1, Priority: task.PriorityLow, Status: task.StatusToDo}},
	}
	svc := newTestService(t, slot)

	got, err := svc.Get(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, "stored", got.Title)
	require.Equal(t, 50.0, got.ROI, "ROI is re-derived on load")
}

func TestService_LoadStoredEmptyListDoesNotSeed(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{found: true, stored: []task.Task{}}
	svc := newTestService(t, slot)

	view, err := svc.View(ctx, task.Filter{})
	require.NoError(t, err)
	require.Empty(t, view.Tasks)
}

func TestService_LoadFailureStartsEmpty(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{loadErr: errors.New("disk gone")}
	svc := newTestService(t, slot)

	view, err := svc.View(ctx, task.Filter{})
	require.NoError(t, err)
	require.Empty(t, view.Tasks)
	require.Zero(t, view.Summary.AvgROI)

	_, err = svc.Create(ctx, task.CreateRequest{Title: "still usable"})
	require.NoError(t, err)
}

func TestService_StartDiscardsResultAfterClose(t *testing.T) {
	slot := &memorySlot{
		found:   true,
		stored:  []task.Task{{ID: "x", Title: "late"}},
		release: make(chan struct{}),
	}
	svc := task.NewService(slot, nil, nil, task.Options{Now: fixedNow})

	svc.Start(context.Background())
	svc.Close()
	close(slot.release)
	<-svc.Ready()

	_, err := svc.Create(context.Background(), task.CreateRequest{Title: "after close"})
	require.ErrorIs(t, err, task.ErrClosed)
	_, err = svc.Get(context.Background(), "x")
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestService_StartDiscardsResultOnCancel(t *testing.T) {
	slot := &memorySlot{
		found:   true,
		stored:  []task.Task{{ID: "x", Title: "late"}},
		release: make(chan struct{}),
	}
	svc := newTestService(t, slot)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	cancel()
	close(slot.release)
	<-svc.Ready()

	_, err := svc.Get(context.Background(), "x")
	require.ErrorIs(t, err, task.ErrTaskNotFound)

	_, err = svc.Create(context.Background(), task.CreateRequest{Title: "after cancel"})
	require.ErrorIs(t, err, task.ErrClosed)
	_, err = svc.Delete(context.Background(), "x")
	require.ErrorIs(t, err, task.ErrClosed)

	stored, saves := slot.snapshot()
	require.Zero(t, saves)
	require.Len(t, stored, 1)
	require.Equal(t, "x", stored[0].ID)
}

func TestService_LoadRespectsCallerContext(t *testing.T) {
	slot := &memorySlot{release: make(chan struct{})}
	svc := newTestService(t, slot)
	defer close(slot.release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, svc.Load(ctx), context.DeadlineExceeded)
}

func TestService_CreateDerivesROIAndDefaults(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{found: true}
	svc := newTestService(t, slot)

	created, err := svc.Create(ctx, task.CreateRequest{
		Title:     "  Close Initech  ",
		Revenue:   1000,
		TimeTaken: 10,
		Notes:     "bring contract",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Close Initech", created.Title)
	require.Equal(t, 100.0, created.ROI)
	require.Equal(t, task.PriorityMedium, created.Priority)
	require.Equal(t, task.StatusToDo, created.Status)
	require.Equal(t, fixedNow(), created.CreatedAt)

	stored, saves := slot.snapshot()
	require.Equal(t, 1, saves)
	require.Len(t, stored, 1)
	require.Equal(t, created.ID, stored[0].ID)
}

func TestService_CreateCoercesMalformedNumbers(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &memorySlot{found: true})

	created, err := svc.Create(ctx, task.CreateRequest{Title: "bad input", Revenue: -50, TimeTaken: -2})
	require.NoError(t, err)
	require.Zero(t, created.Revenue)
	require.Zero(t, created.ROI)
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &memorySlot{found: true})

	_, err := svc.Create(ctx, task.CreateRequest{Title: ""})
	require.ErrorIs(t, err, task.ErrInvalidInput)
	_, err = svc.Create(ctx, task.CreateRequest{Title: "x", Priority: "Urgent"})
	require.ErrorIs(t, err, task.ErrInvalidPriority)
}

func TestService_UpdateRecomputesROI(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{found: true}
	svc := newTestService(t, slot)

	created, err := svc.Create(ctx, task.CreateRequest{Title: "deal", Revenue: 1000, TimeTaken: 10})
	require.NoError(t, err)

	hours := 4.0
	status := task.StatusDone
	updated, err := svc.Update(ctx, task.UpdateRequest{ID: created.ID, TimeTaken: &hours, Status: &status})
	require.NoError(t, err)
	require.Equal(t, 250.0, updated.ROI)
	require.Equal(t, task.StatusDone, updated.Status)
	require.Equal(t, created.CreatedAt, updated.CreatedAt)
	require.Equal(t, created.Title, updated.Title)

	stored, _ := slot.snapshot()
	require.Equal(t, 250.0, stored[0].ROI)
}

func TestService_UpdateMissing(t *testing.T) {
	svc := newTestService(t, &memorySlot{found: true})
	title := "x"
	_, err := svc.Update(context.Background(), task.UpdateRequest{ID: "nope", Title: &title})
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestService_DeleteAndUndo(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{found: true}
	svc := newTestService(t, slot)

	keep, err := svc.Create(ctx, task.CreateRequest{Title: "keep", Revenue: 10, TimeTaken: 1})
	require.NoError(t, err)
	gone, err := svc.Create(ctx, task.CreateRequest{Title: "gone", Revenue: 900, TimeTaken: 3, Priority: task.PriorityHigh, Notes: "n"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, gone.ID)
	require.NoError(t, err)
	require.Equal(t, *gone, *deleted)

	view, err := svc.View(ctx, task.Filter{})
	require.NoError(t, err)
	require.Len(t, view.Tasks, 1)
	require.Equal(t, keep.ID, view.Tasks[0].ID)

	pending, ok := svc.PendingUndo()
	require.True(t, ok)
	require.Equal(t, gone.ID, pending.ID)

	restored, err := svc.Undo(ctx)
	require.NoError(t, err)
	require.Equal(t, *gone, *restored)

	got, err := svc.Get(ctx, gone.ID)
	require.NoError(t, err)
	require.Equal(t, *gone, *got)

	stored, _ := slot.snapshot()
	require.Len(t, stored, 2)

	_, err = svc.Undo(ctx)
	require.ErrorIs(t, err, task.ErrNothingToUndo)
}

func TestService_DeleteMissing(t *testing.T) {
	svc := newTestService(t, &memorySlot{found: true})
	_, err := svc.Delete(context.Background(), "nope")
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestService_DismissUndo(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &memorySlot{found: true})

	created, err := svc.Create(ctx, task.CreateRequest{Title: "t"})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	require.True(t, svc.DismissUndo())
	_, err = svc.Undo(ctx)
	require.ErrorIs(t, err, task.ErrNothingToUndo)
}

func TestService_UndoExpires(t *testing.T) {
	ctx := context.Background()
	svc := task.NewService(&memorySlot{found: true}, nil, nil, task.Options{
		Now:         fixedNow,
		UndoTimeout: 10 * time.Millisecond,
	})
	defer svc.Close()

	created, err := svc.Create(ctx, task.CreateRequest{Title: "t"})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, ok := svc.PendingUndo()
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, err = svc.Undo(ctx)
	require.ErrorIs(t, err, task.ErrNothingToUndo)
}

func TestService_SaveFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	slot := &memorySlot{found: true, saveErr: errors.New("quota exceeded")}
	svc := newTestService(t, slot)

	created, err := svc.Create(ctx, task.CreateRequest{Title: "kept in memory"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	_, saves := slot.snapshot()
	require.Equal(t, 1, saves)
}

func TestService_ViewFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	clock := fixedNow()
	svc := task.NewService(&memorySlot{found: true}, nil, nil, task.Options{
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	})
	defer svc.Close()

	mustCreate := func(req task.CreateRequest) *task.Task {
		created, err := svc.Create(ctx, req)
		require.NoError(t, err)
		return created
	}
	low := mustCreate(task.CreateRequest{Title: "Email blast", Priority: task.PriorityLow, Revenue: 100, TimeTaken: 1})
	highOld := mustCreate(task.CreateRequest{Title: "Acme renewal", Priority: task.PriorityHigh, Revenue: 1000, TimeTaken: 10})
	highNew := mustCreate(task.CreateRequest{Title: "Globex upsell", Priority: task.PriorityHigh, Notes: "acme referral", Revenue: 500, TimeTaken: 5})

	view, err := svc.View(ctx, task.Filter{})
	require.NoError(t, err)
	require.Equal(t, []string{highNew.ID, highOld.ID, low.ID}, ids(view.Tasks))
	require.Equal(t, 3, view.Summary.TaskCount)

	view, err = svc.View(ctx, task.Filter{Search: "ACME"})
	require.NoError(t, err)
	require.Equal(t, []string{highNew.ID, highOld.ID}, ids(view.Tasks))
	require.Equal(t, 3, view.Summary.TaskCount, "summary covers the full list")

	view, err = svc.View(ctx, task.Filter{Priority: task.PriorityLow})
	require.NoError(t, err)
	require.Equal(t, []string{low.ID}, ids(view.Tasks))

	view, err = svc.View(ctx, task.Filter{Status: task.StatusDone})
	require.NoError(t, err)
	require.Empty(t, view.Tasks)
	require.NotNil(t, view.Tasks)
}

func TestService_LogsActivity(t *testing.T) {
	ctx := context.Background()
	activities := &mocks.ActivityRepository{}
	activities.On("Log", mock.Anything, mock.Anything).Return(nil)

	svc := task.NewService(&memorySlot{found: true}, activities, nil, task.Options{Now: fixedNow, UndoTimeout: time.Minute})
	defer svc.Close()

	created, err := svc.Create(ctx, task.CreateRequest{Title: "t"})
	require.NoError(t, err)
	_, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	_, err = svc.Undo(ctx)
	require.NoError(t, err)

	var kinds []activity.ActivityType
	for _, call := range activities.Calls {
		entry := call.Arguments.Get(1).(*activity.ActivityEntry)
		kinds = append(kinds, entry.ActivityType)
	}
	require.Equal(t, []activity.ActivityType{
		activity.TypeTasksLoaded,
		activity.TypeTaskCreated,
		activity.TypeTaskDeleted,
		activity.TypeTaskRestored,
	}, kinds)
}

func TestService_ActivityFailureIsNonFatal(t *testing.T) {
	activities := &mocks.ActivityRepository{}
	activities.On("Log", mock.Anything, mock.Anything).Return(errors.New("log full"))

	svc := task.NewService(&memorySlot{found: true}, activities, nil, task.Options{Now: fixedNow})
	defer svc.Close()

	_, err := svc.Create(context.Background(), task.CreateRequest{Title: "t"})
	require.NoError(t, err)
}

func TestService_UsesMockSlot(t *testing.T) {
	ctx := context.Background()
	slot := &mocks.TaskSlotRepository{}
	slot.On("Load", mock.Anything).Return(nil, false, nil)
	slot.On("Save", mock.Anything, mock.MatchedBy(func(tasks []task.Task) bool { return len(tasks) == 3 })).Return(nil)

	svc := newTestService(t, slot)
	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, summary.TaskCount)
	slot.AssertExpectations(t)
}
