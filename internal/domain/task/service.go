package task

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/salestrack/internal/domain/activity"
)

// DefaultUndoTimeout is how long a deleted task stays restorable.
const DefaultUndoTimeout = 5 * time.Second

// Options tunes a Service.
type Options struct {
	GradeScale  GradeScale
	UndoTimeout time.Duration
	// Seed builds the starter list when the slot is empty. Defaults to SeedTasks.
	Seed func(now time.Time) []Task
	Now  func() time.Time
}

// Service owns the in-memory task list and mirrors it to the slot after
// every mutation. Events are applied one at a time.
type Service struct {
	slot       SlotRepository
	activities ActivityRepository
	logger     *slog.Logger
	scale      GradeScale
	seed       func(time.Time) []Task
	now        func() time.Time
	undo       *undoBuffer

	startOnce sync.Once
	ready     chan struct{}

	mu     sync.Mutex
	tasks  []Task
	closed bool
}

// NewService creates a new task service. Call Start to begin loading.
func NewService(slot SlotRepository, activities ActivityRepository, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if len(opts.GradeScale.Bands) == 0 && opts.GradeScale.Floor == "" {
		opts.GradeScale = DefaultGradeScale()
	}
	if opts.UndoTimeout <= 0 {
		opts.UndoTimeout = DefaultUndoTimeout
	}
	if opts.Seed == nil {
		opts.Seed = SeedTasks
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Service{
		slot:       slot,
		activities: activities,
		logger:     logger,
		scale:      opts.GradeScale,
		seed:       opts.Seed,
		now:        opts.Now,
		ready:      make(chan struct{}),
	}
	s.undo = newUndoBuffer(opts.UndoTimeout, s.undoExpired)
	return s
}

// CreateRequest describes a task creation request.
type CreateRequest struct {
	Title     string
	Revenue   float64
	TimeTaken float64
	Priority  Priority
	Status    Status
	Notes     string
}

// UpdateRequest describes a task update. Nil fields are left unchanged.
type UpdateRequest struct {
	ID        string
	Title     *string
	Revenue   *float64
	TimeTaken *float64
	Priority  *Priority
	Status    *Status
	Notes     *string
}

// Start loads the saved list in the background. The result is discarded if
// ctx is canceled or the service is closed before the load finishes; a
// discarded load leaves the service closed.
func (s *Service) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		go func() {
			defer close(s.ready)
			tasks := s.loadInitial(ctx)

			s.mu.Lock()
			defer s.mu.Unlock()
			if s.closed || ctx.Err() != nil {
				// Nothing was loaded, so a later save would clobber the slot.
				s.logger.Debug("discarding initial load", "closed", s.closed)
				s.closed = true
				return
			}
			s.tasks = tasks
		}()
	})
}

// Ready is closed once the initial load has been applied or discarded.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Load starts the initial load if needed and waits for it.
func (s *Service) Load(ctx context.Context) error {
	s.Start(context.WithoutCancel(ctx))
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the service and drops any pending undo.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.undo.Dismiss()
}

// Create adds a new task with a fresh ID and timestamp.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	status := req.Status
	if status == "" {
		status = StatusToDo
	}

	t := Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(req.Title),
		Revenue:   sanitizeAmount(req.Revenue),
		TimeTaken: sanitizeHours(req.TimeTaken),
		Priority:  priority,
		Status:    status,
		Notes:     req.Notes,
		CreatedAt: s.now(),
	}
	t.ROI = ROI(t.Revenue, t.TimeTaken)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	s.tasks = append(s.tasks, t)
	s.persistLocked(ctx)
	s.logActivity(ctx, activity.TypeTaskCreated, &t, fmt.Sprintf("created task %q", t.Title))

	return &t, nil
}

// Update patches a task by ID and re-derives its ROI.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Task, error) {
	if err := ValidateUpdateInput(req); err != nil {
		return nil, err
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	idx := s.indexLocked(req.ID)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	t := s.tasks[idx]
	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Revenue != nil {
		t.Revenue = sanitizeAmount(*req.Revenue)
	}
	if req.TimeTaken != nil {
		t.TimeTaken = sanitizeHours(*req.TimeTaken)
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	t.ROI = ROI(t.Revenue, t.TimeTaken)

	s.tasks[idx] = t
	s.persistLocked(ctx)
	s.logActivity(ctx, activity.TypeTaskUpdated, &t, fmt.Sprintf("updated task %q", t.Title))

	return &t, nil
}

// Delete removes the task with the given ID and holds it for undo.
func (s *Service) Delete(ctx context.Context, id string) (*Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	t := s.tasks[idx]
	s.tasks = slices.Delete(s.tasks, idx, idx+1)
	s.undo.Put(t)
	s.persistLocked(ctx)
	s.logActivity(ctx, activity.TypeTaskDeleted, &t, fmt.Sprintf("deleted task %q", t.Title))

	return &t, nil
}

// Undo restores the most recently deleted task exactly as it was.
func (s *Service) Undo(ctx context.Context) (*Task, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	pending, ok := s.undo.Pending()
	if !ok {
		return nil, ErrNothingToUndo
	}
	if s.indexLocked(pending.ID) >= 0 {
		return nil, fmt.Errorf("%w: task %s already present", ErrNothingToUndo, pending.ID)
	}
	t, ok := s.undo.Take()
	if !ok {
		return nil, ErrNothingToUndo
	}

	s.tasks = append(s.tasks, t)
	s.persistLocked(ctx)
	s.logActivity(ctx, activity.TypeTaskRestored, &t, fmt.Sprintf("restored task %q", t.Title))

	return &t, nil
}

// DismissUndo drops the pending undo. Reports whether one was pending.
func (s *Service) DismissUndo() bool {
	return s.undo.Dismiss()
}

// PendingUndo returns the task that Undo would restore.
func (s *Service) PendingUndo() (*Task, bool) {
	t, ok := s.undo.Pending()
	if !ok {
		return nil, false
	}
	return &t, true
}

// Get fetches a task by ID.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, ErrTaskNotFound
	}
	t := s.tasks[idx]
	return &t, nil
}

// View recomputes the filtered, sorted task list and the summary over the
// full list.
func (s *Service) View(ctx context.Context, filter Filter) (*View, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	all := slices.Clone(s.tasks)
	s.mu.Unlock()

	visible := make([]Task, 0, len(all))
	for _, t := range all {
		if filter.matches(t) {
			visible = append(visible, t)
		}
	}

	return &View{
		Tasks:   Sort(visible),
		Summary: Summarize(all, s.scale),
	}, nil
}

// Summary recomputes the aggregate over the full list.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	view, err := s.View(ctx, Filter{})
	if err != nil {
		return Summary{}, err
	}
	return view.Summary, nil
}

// GradeScale returns the thresholds used for grading.
func (s *Service) GradeScale() GradeScale {
	return s.scale
}

func (s *Service) loadInitial(ctx context.Context) []Task {
	stored, found, err := s.slot.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load tasks", "error", err)
		return []Task{}
	}

	if !found {
		seed := s.seed(s.now())
		s.logger.Info("no saved tasks, using seed list", "count", len(seed))
		if err := s.slot.Save(ctx, seed); err != nil {
			s.logger.Error("failed to save seed tasks", "error", err)
		}
		s.logActivity(ctx, activity.TypeTasksSeeded, nil, fmt.Sprintf("seeded %d tasks", len(seed)))
		return seed
	}

	for i := range stored {
		stored[i].ROI = ROI(stored[i].Revenue, stored[i].TimeTaken)
	}
	s.logger.Info("loaded tasks", "count", len(stored))
	s.logActivity(ctx, activity.TypeTasksLoaded, nil, fmt.Sprintf("loaded %d tasks", len(stored)))
	if stored == nil {
		stored = []Task{}
	}
	return stored
}

// persistLocked writes the full list. Failures are logged only.
func (s *Service) persistLocked(ctx context.Context) {
	if err := s.slot.Save(ctx, slices.Clone(s.tasks)); err != nil {
		s.logger.Error("failed to save tasks", "error", err, "count", len(s.tasks))
	}
}

func (s *Service) indexLocked(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Service) undoExpired(t Task) {
	s.logger.Debug("undo expired", "task_id", t.ID)
	s.logActivity(context.Background(), activity.TypeUndoExpired, &t, fmt.Sprintf("undo window closed for %q", t.Title))
}

func (s *Service) logActivity(ctx context.Context, kind activity.ActivityType, t *Task, summary string) {
	if s.activities == nil {
		return
	}
	entry := &activity.ActivityEntry{
		ActivityType: kind,
		Summary:      summary,
		CreatedAt:    s.now(),
	}
	if t != nil {
		id := t.ID
		entry.TaskID = &id
	}
	if err := s.activities.Log(ctx, entry); err != nil {
		s.logger.Warn("failed to log activity", "type", kind, "error", err)
	}
}
