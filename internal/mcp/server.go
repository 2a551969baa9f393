package mcp

import (
	"context"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/salestrack/internal/domain/activity"
	"github.com/rpggio/salestrack/internal/domain/task"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// TaskService defines task operations needed by MCP.
type TaskService interface {
	Create(ctx context.Context, req task.CreateRequest) (*task.Task, error)
	Update(ctx context.Context, req task.UpdateRequest) (*task.Task, error)
	Delete(ctx context.Context, id string) (*task.Task, error)
	Undo(ctx context.Context) (*task.Task, error)
	DismissUndo() bool
	Get(ctx context.Context, id string) (*task.Task, error)
	View(ctx context.Context, filter task.Filter) (*task.View, error)
	GradeScale() task.GradeScale
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Tasks    TaskService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	AuthToken     string
	TransportMode string // "stdio" or "http"
	UndoTimeout   time.Duration
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "salestrack",
		Version: Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is local-only; bearer auth applies to HTTP when a token is set.
	if cfg.TransportMode == "http" && cfg.AuthToken != "" {
		server.AddReceivingMiddleware(authMiddleware(cfg.AuthToken))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services, cfg.UndoTimeout.Seconds())

	return server
}
