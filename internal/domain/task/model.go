package task

import "time"

// Priority ranks a task for ordering.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Status represents the workflow state of a task
type Status string

const (
	StatusToDo       Status = "To Do"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Task is a single tracked sales activity.
// ROI is always derived from Revenue and TimeTaken when the task is saved.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Revenue   float64   `json:"revenue"`
	TimeTaken float64   `json:"timeTaken"`
	ROI       float64   `json:"roi"`
	Priority  Priority  `json:"priority"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary is a derived aggregate over a task list. Never persisted.
type Summary struct {
	TaskCount    int            `json:"task_count"`
	TotalRevenue float64        `json:"total_revenue"`
	TotalHours   float64        `json:"total_hours"`
	AvgROI       float64        `json:"avg_roi"`
	Efficiency   float64        `json:"efficiency"`
	Grade        string         `json:"grade"`
	ByStatus     map[Status]int `json:"by_status"`
}

// Filter narrows the task view.
type Filter struct {
	Search   string
	Priority Priority
	Status   Status
}

// View is the recomputed visible state of the store.
type View struct {
	Tasks   []Task  `json:"tasks"`
	Summary Summary `json:"summary"`
}

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p.rank() > 0
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// AllPriorities lists priorities from highest to lowest.
func AllPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// AllStatuses lists statuses in workflow order.
func AllStatuses() []Status {
	return []Status{StatusToDo, StatusInProgress, StatusDone}
}
