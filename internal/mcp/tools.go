package mcp

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/salestrack/internal/domain/activity"
	"github.com/rpggio/salestrack/internal/domain/task"
)

type tools struct {
	tasks       TaskService
	activity    ActivityService
	undoSeconds float64
}

func registerTools(server *sdkmcp.Server, services Services, undoSeconds float64) {
	t := &tools{tasks: services.Tasks, activity: services.Activity, undoSeconds: undoSeconds}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks sorted by priority then newest first, with the summary over all tasks",
	}, t.listTasks)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_task",
		Description: "Get a single task by ID",
	}, t.getTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_task",
		Description: "Create a sales task; ROI is derived from revenue and time_taken",
	}, t.createTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_task",
		Description: "Update fields of a task by ID; ROI is recomputed",
	}, t.updateTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task by ID; it can be restored with undo_delete for a short time",
	}, t.deleteTask)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "undo_delete",
		Description: "Restore the most recently deleted task exactly as it was",
	}, t.undoDelete)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dismiss_undo",
		Description: "Discard the pending undo for the most recently deleted task",
	}, t.dismissUndo)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_summary",
		Description: "Get total revenue, average ROI, efficiency and performance grade",
	}, t.getSummary)
	if t.activity != nil {
		sdkmcp.AddTool(server, &sdkmcp.Tool{
			Name:        "get_recent_activity",
			Description: "List recent task activity, newest first",
		}, t.getRecentActivity)
	}
}

func (t *tools) listTasks(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListTasksParams) (*sdkmcp.CallToolResult, ListTasksResponse, error) {
	priority, err := task.ParsePriority(in.Priority)
	if err != nil {
		return nil, ListTasksResponse{}, MapError(err)
	}
	status, err := task.ParseStatus(in.Status)
	if err != nil {
		return nil, ListTasksResponse{}, MapError(err)
	}

	view, err := t.tasks.View(ctx, task.Filter{Search: in.Search, Priority: priority, Status: status})
	if err != nil {
		return nil, ListTasksResponse{}, MapError(err)
	}

	resp := ListTasksResponse{
		Tasks:   make([]TaskResponse, 0, len(view.Tasks)),
		Summary: toSummaryResponse(view.Summary),
	}
	for _, item := range view.Tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(item))
	}
	return nil, resp, nil
}

func (t *tools) getTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetTaskParams) (*sdkmcp.CallToolResult, TaskEnvelope, error) {
	got, err := t.tasks.Get(ctx, in.ID)
	if err != nil {
		return nil, TaskEnvelope{}, MapError(err)
	}
	return nil, TaskEnvelope{Task: toTaskResponse(*got)}, nil
}

func (t *tools) createTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateTaskParams) (*sdkmcp.CallToolResult, TaskEnvelope, error) {
	req := task.CreateRequest{
		Title:     in.Title,
		Revenue:   in.Revenue,
		TimeTaken: in.TimeTaken,
		Notes:     in.Notes,
	}
	var err error
	if req.Priority, err = task.ParsePriority(in.Priority); err != nil {
		return nil, TaskEnvelope{}, MapError(err)
	}
	if req.Status, err = task.ParseStatus(in.Status); err != nil {
		return nil, TaskEnvelope{}, MapError(err)
	}

	created, err := t.tasks.Create(ctx, req)
	if err != nil {
		return nil, TaskEnvelope{}, MapError(err)
	}
	return nil, TaskEnvelope{Task: toTaskResponse(*created)}, nil
}

func (t *tools) updateTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateTaskParams) (*sdkmcp.CallToolResult, TaskEnvelope, error) {
	req := task.UpdateRequest{
		ID:        in.ID,
		Title:     in.Title,
		Revenue:   in.Revenue,
		TimeTaken: in.TimeTaken,
		Notes:     in.Notes,
	}
	if in.Priority != nil {
		p, err := parseRequired(in.Priority, task.ParsePriority, task.ErrInvalidPriority)
		if err != nil {
			return nil, TaskEnvelope{}, MapError(err)
		}
		req.Priority = &p
	}
	if in.Status != nil {
		s, err := parseRequired(in.Status, task.ParseStatus, task.ErrInvalidStatus)
		if err != nil {
			return nil, TaskEnvelope{}, MapError(err)
		}
		req.Status = &s
	}

	updated, err := t.tasks.Update(ctx, req)
	if err != nil {
		return nil, TaskEnvelope{}, MapError(err)
	}
	return nil, TaskEnvelope{Task: toTaskResponse(*updated)}, nil
}

func (t *tools) deleteTask(ctx context.Context, _ *sdkmcp.CallToolRequest, in DeleteTaskParams) (*sdkmcp.CallToolResult, DeleteTaskResponse, error) {
	deleted, err := t.tasks.Delete(ctx, in.ID)
	if err != nil {
		return nil, DeleteTaskResponse{}, MapError(err)
	}
	return nil, DeleteTaskResponse{Task: toTaskResponse(*deleted), UndoSeconds: t.undoSeconds}, nil
}

func (t *tools) undoDelete(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, TaskEnvelope, error) {
	restored, err := t.tasks.Undo(ctx)
	if err != nil {
		return nil, TaskEnvelope{}, MapError(err)
	}
	return nil, TaskEnvelope{Task: toTaskResponse(*restored)}, nil
}

func (t *tools) dismissUndo(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, DismissUndoResponse, error) {
	return nil, DismissUndoResponse{Dismissed: t.tasks.DismissUndo()}, nil
}

func (t *tools) getSummary(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, GetSummaryResponse, error) {
	view, err := t.tasks.View(ctx, task.Filter{})
	if err != nil {
		return nil, GetSummaryResponse{}, MapError(err)
	}

	scale := t.tasks.GradeScale()
	bands := make([]GradeBand, 0, len(scale.Bands))
	for _, b := range scale.Bands {
		bands = append(bands, GradeBand{MinROI: b.MinROI, Grade: b.Grade})
	}
	return nil, GetSummaryResponse{
		Summary: toSummaryResponse(view.Summary),
		Grades:  bands,
		Floor:   scale.Floor,
	}, nil
}

func (t *tools) getRecentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetRecentActivityParams) (*sdkmcp.CallToolResult, GetRecentActivityResponse, error) {
	opts := activity.ListActivityOptions{Limit: in.Limit, Offset: in.Offset}
	if kind := strings.TrimSpace(in.Type); kind != "" {
		activityType := activity.ActivityType(kind)
		opts.ActivityType = &activityType
	}
	if id := strings.TrimSpace(in.TaskID); id != "" {
		opts.TaskID = &id
	}

	entries, err := t.activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, GetRecentActivityResponse{}, MapError(err)
	}

	resp := GetRecentActivityResponse{Entries: make([]ActivityResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toActivityResponse(e))
	}
	return nil, resp, nil
}

// parseRequired parses an explicitly supplied enum value. Unlike filters,
// an update may not clear the field.
func parseRequired[T ~string](raw *string, parse func(string) (T, error), invalid error) (T, error) {
	v, err := parse(*raw)
	if err != nil {
		return v, err
	}
	if v == "" {
		return v, invalid
	}
	return v, nil
}
