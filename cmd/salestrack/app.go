package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/salestrack/internal/config"
	"github.com/rpggio/salestrack/internal/domain/activity"
	"github.com/rpggio/salestrack/internal/domain/task"
	"github.com/rpggio/salestrack/internal/sqlite"
)

// App holds the wired services for one process.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	db       *sqlite.DB
	slot     *sqlite.SlotRepository
	tasks    *task.Service
	activity *activity.Service

	logFile io.Closer
}

// NewApp loads configuration, opens the database and builds the services.
// logOut receives logs unless a log file is configured.
func NewApp(logOut io.Writer) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	a := &App{cfg: cfg}

	logWriter := logOut
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.logFile = file
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.db = db

	if err := db.RunMigrations(); err != nil {
		a.Close()
		return nil, err
	}

	a.slot = sqlite.NewSlotRepository(db, cfg.DB.Slot)
	activityRepo := sqlite.NewActivityRepository(db)

	a.activity = activity.NewService(activityRepo, a.logger)
	a.tasks = task.NewService(a.slot, activityRepo, a.logger, task.Options{
		GradeScale:  cfg.Grades,
		UndoTimeout: cfg.Undo.Timeout,
	})

	return a, nil
}

// Close releases the services, the database and the log file.
func (a *App) Close() {
	if a.tasks != nil {
		a.tasks.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
