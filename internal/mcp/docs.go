package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `salestrack keeps a list of sales tasks and derives per-task ROI and an overall performance grade.

Core concepts:
- Task: title, revenue, time_taken (hours), priority (High|Medium|Low), status (To Do|In Progress|Done), notes.
- ROI: revenue / time_taken, or 0 when time_taken <= 0. Always derived, never set directly.
- Summary: total revenue, average ROI, efficiency (total revenue / total hours) and a letter grade.

Workflow:
1) list_tasks to see tasks (High first, newest first within a priority). Use search/priority/status to narrow.
2) create_task / update_task to record work. ROI is recomputed on every save.
3) delete_task removes a task; undo_delete restores it while the undo window is open (see undo_seconds).
4) get_summary for the aggregate and grade thresholds; get_recent_activity for an audit trail.

Docs:
- salestrack://docs/metrics (ROI, efficiency and grading rules)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "salestrack://docs/metrics",
		Name:        "docs_metrics",
		Title:       "salestrack metrics",
		Description: "How ROI, efficiency, and the performance grade are computed.",
		Content: `# Metrics

## ROI
roi = revenue / time_taken when time_taken > 0, otherwise 0.
Malformed numbers never raise: negative revenue is stored as 0 and non-positive hours give ROI 0.

## Efficiency
efficiency = total revenue / total positive hours across all tasks (0 when there are no hours).

## Average ROI
Mean of every task's ROI. An empty list has average ROI 0.

## Grade
The average ROI is mapped to a letter grade by descending thresholds; get_summary returns the active bands.
A higher average ROI never produces a worse grade.

## Ordering
Tasks are ordered High > Medium > Low, then newest first. Ties keep their stored order.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
