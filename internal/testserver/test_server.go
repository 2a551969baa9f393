package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/salestrack/internal/domain/activity"
	"github.com/rpggio/salestrack/internal/domain/task"
	"github.com/rpggio/salestrack/internal/mcp"
	"github.com/rpggio/salestrack/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// Options tunes a TestServer.
type Options struct {
	UndoTimeout time.Duration
	Now         func() time.Time
	AuthToken   string
}

// TestServer wires the whole stack over a SQLite database.
type TestServer struct {
	DB       *sqlite.DB
	Slot     *sqlite.SlotRepository
	Tasks    *task.Service
	Activity *activity.Service
	Server   *sdkmcp.Server
}

// New builds a server backed by a fresh in-memory database.
func New(t *testing.T, opts Options) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	return NewWithDB(t, db, opts)
}

// NewWithDB builds a server over an existing database, as a restart would.
func NewWithDB(t *testing.T, db *sqlite.DB, opts Options) *TestServer {
	t.Helper()

	if opts.UndoTimeout <= 0 {
		opts.UndoTimeout = time.Minute
	}

	slot := sqlite.NewSlotRepository(db, sqlite.DefaultSlot)
	activityRepo := sqlite.NewActivityRepository(db)

	taskSvc := task.NewService(slot, activityRepo, nil, task.Options{
		UndoTimeout: opts.UndoTimeout,
		Now:         opts.Now,
	})
	t.Cleanup(taskSvc.Close)
	activitySvc := activity.NewService(activityRepo, nil)

	mode := "stdio"
	if opts.AuthToken != "" {
		mode = "http"
	}
	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Tasks:    taskSvc,
			Activity: activitySvc,
		},
		AuthToken:     opts.AuthToken,
		TransportMode: mode,
		UndoTimeout:   opts.UndoTimeout,
	})

	return &TestServer{
		DB:       db,
		Slot:     slot,
		Tasks:    taskSvc,
		Activity: activitySvc,
		Server:   server,
	}
}

// Connect opens a client session over in-memory transports.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := ts.Server.Connect(context.Background(), serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	return connectClient(t, clientTransport)
}

// ConnectHTTP serves the server over streamable HTTP and connects to it.
// A non-empty token is sent as a bearer credential.
func (ts *TestServer) ConnectHTTP(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()

	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return ts.Server
	}, nil)
	httpServer := httptest.NewServer(handler)
	t.Cleanup(httpServer.Close)

	return connectClient(t, &sdkmcp.StreamableClientTransport{
		Endpoint:   httpServer.URL,
		HTTPClient: &http.Client{Transport: bearerTransport{token: token, next: http.DefaultTransport}},
	})
}

func connectClient(t *testing.T, transport sdkmcp.Transport) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), transport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if b.token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	return b.next.RoundTrip(req)
}
