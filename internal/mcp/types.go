package mcp

import (
	"time"

	"github.com/rpggio/salestrack/internal/domain/activity"
	"github.com/rpggio/salestrack/internal/domain/task"
)

type ListTasksParams struct {
	Search   string `json:"search,omitempty" jsonschema:"case-insensitive text matched against title and notes"`
	Priority string `json:"priority,omitempty" jsonschema:"High, Medium, Low or All"`
	Status   string `json:"status,omitempty" jsonschema:"To Do, In Progress, Done or All"`
}

type GetTaskParams struct {
	ID string `json:"id" jsonschema:"task ID"`
}

type CreateTaskParams struct {
	Title     string  `json:"title" jsonschema:"short task title"`
	Revenue   float64 `json:"revenue,omitempty" jsonschema:"revenue attributed to the task"`
	TimeTaken float64 `json:"time_taken,omitempty" jsonschema:"hours invested"`
	Priority  string  `json:"priority,omitempty" jsonschema:"High, Medium or Low (default Medium)"`
	Status    string  `json:"status,omitempty" jsonschema:"To Do, In Progress or Done (default To Do)"`
	Notes     string  `json:"notes,omitempty" jsonschema:"free-form notes"`
}

type UpdateTaskParams struct {
	ID        string   `json:"id" jsonschema:"task ID"`
	Title     *string  `json:"title,omitempty"`
	Revenue   *float64 `json:"revenue,omitempty"`
	TimeTaken *float64 `json:"time_taken,omitempty"`
	Priority  *string  `json:"priority,omitempty"`
	Status    *string  `json:"status,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

type DeleteTaskParams struct {
	ID string `json:"id" jsonschema:"task ID"`
}

type EmptyParams struct{}

type GetRecentActivityParams struct {
	Type   string `json:"type,omitempty" jsonschema:"activity type filter, e.g. task_created"`
	TaskID string `json:"task_id,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Revenue   float64 `json:"revenue"`
	TimeTaken float64 `json:"time_taken"`
	ROI       float64 `json:"roi"`
	Priority  string  `json:"priority"`
	Status    string  `json:"status"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type SummaryResponse struct {
	TaskCount    int            `json:"task_count"`
	TotalRevenue float64        `json:"total_revenue"`
	TotalHours   float64        `json:"total_hours"`
	AvgROI       float64        `json:"avg_roi"`
	Efficiency   float64        `json:"efficiency"`
	Grade        string         `json:"grade"`
	ByStatus     map[string]int `json:"by_status"`
}

type ListTasksResponse struct {
	Tasks   []TaskResponse  `json:"tasks"`
	Summary SummaryResponse `json:"summary"`
}

type TaskEnvelope struct {
	Task TaskResponse `json:"task"`
}

type DeleteTaskResponse struct {
	Task        TaskResponse `json:"task"`
	UndoSeconds float64      `json:"undo_seconds"`
}

type DismissUndoResponse struct {
	Dismissed bool `json:"dismissed"`
}

type GetSummaryResponse struct {
	Summary SummaryResponse `json:"summary"`
	Grades  []GradeBand     `json:"grades"`
	Floor   string          `json:"floor"`
}

type GradeBand struct {
	MinROI float64 `json:"min_roi"`
	Grade  string  `json:"grade"`
}

type ActivityResponse struct {
	ID        int64  `json:"id"`
	TaskID    string `json:"task_id,omitempty"`
	Type      string `json:"type"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"created_at"`
}

type GetRecentActivityResponse struct {
	Entries []ActivityResponse `json:"entries"`
}

func toTaskResponse(t task.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Revenue:   t.Revenue,
		TimeTaken: t.TimeTaken,
		ROI:       t.ROI,
		Priority:  string(t.Priority),
		Status:    string(t.Status),
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toSummaryResponse(s task.Summary) SummaryResponse {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, n := range s.ByStatus {
		byStatus[string(status)] = n
	}
	return SummaryResponse{
		TaskCount:    s.TaskCount,
		TotalRevenue: s.TotalRevenue,
		TotalHours:   s.TotalHours,
		AvgROI:       s.AvgROI,
		Efficiency:   s.Efficiency,
		Grade:        s.Grade,
		ByStatus:     byStatus,
	}
}

func toActivityResponse(e activity.ActivityEntry) ActivityResponse {
	resp := ActivityResponse{
		ID:        e.ID,
		Type:      string(e.ActivityType),
		Summary:   e.Summary,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if e.TaskID != nil {
		resp.TaskID = *e.TaskID
	}
	return resp
}
