package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/salestrack/internal/domain/task"
	"github.com/rpggio/salestrack/internal/repository"
)

// DefaultSlot is the slot name holding the task list.
const DefaultSlot = "sales-tasks"

var _ repository.TaskSlotRepository = (*SlotRepository)(nil)

// SlotRepository stores the serialized task list under one named key.
type SlotRepository struct {
	db   *DB
	name string
}

// NewSlotRepository creates a new SlotRepository for the given slot name
func NewSlotRepository(db *DB, name string) *SlotRepository {
	if name == "" {
		name = DefaultSlot
	}
	return &SlotRepository{db: db, name: name}
}

// Name returns the slot key.
func (r *SlotRepository) Name() string {
	return r.name
}

// Load returns the stored list. found is false when the slot has never
// been written.
func (r *SlotRepository) Load(ctx context.Context) ([]task.Task, bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv_slots WHERE name = ?`, r.name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %s: %w", r.name, err)
	}

	var tasks []task.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, false, fmt.Errorf("%w: slot %s: %v", repository.ErrCorruptSlot, r.name, err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, true, nil
}

// Save overwrites the slot with the full list.
func (r *SlotRepository) Save(ctx context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	query := `
		INSERT INTO kv_slots (name, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, r.name, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", r.name, err)
	}
	return nil
}

// Clear removes the slot so the next load falls back to the seed list.
// Returns repository.ErrNotFound when nothing was stored.
func (r *SlotRepository) Clear(ctx context.Context) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM kv_slots WHERE name = ?`, r.name)
	if err != nil {
		return fmt.Errorf("failed to clear slot %s: %w", r.name, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to clear slot %s: %w", r.name, err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
