package task

import (
	"sync"
	"time"
)

// undoBuffer holds the most recently deleted task until it is taken,
// dismissed, or the auto-dismiss delay elapses.
type undoBuffer struct {
	mu       sync.Mutex
	delay    time.Duration
	task     *Task
	timer    *time.Timer
	gen      uint64
	onExpire func(Task)
}

func newUndoBuffer(delay time.Duration, onExpire func(Task)) *undoBuffer {
	return &undoBuffer{delay: delay, onExpire: onExpire}
}

// Put replaces any pending task and restarts the auto-dismiss timer.
func (b *undoBuffer) Put(t Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
	b.gen++
	held := t
	b.task = &held

	if b.delay > 0 {
		gen := b.gen
		b.timer = time.AfterFunc(b.delay, func() { b.expire(gen) })
	}
}

// Take returns the pending task and clears the buffer.
func (b *undoBuffer) Take() (Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.task == nil {
		return Task{}, false
	}
	t := *b.task
	b.clearLocked()
	return t, true
}

// Dismiss drops the pending task. Reports whether one was pending.
func (b *undoBuffer) Dismiss() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.task == nil {
		return false
	}
	b.clearLocked()
	return true
}

// Pending returns the task currently held, if any.
func (b *undoBuffer) Pending() (Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.task == nil {
		return Task{}, false
	}
	return *b.task, true
}

func (b *undoBuffer) expire(gen uint64) {
	b.mu.Lock()
	if gen != b.gen || b.task == nil {
		b.mu.Unlock()
		return
	}
	t := *b.task
	b.task = nil
	b.timer = nil
	b.mu.Unlock()

	if b.onExpire != nil {
		b.onExpire(t)
	}
}

func (b *undoBuffer) clearLocked() {
	b.stopLocked()
	b.gen++
	b.task = nil
}

func (b *undoBuffer) stopLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
