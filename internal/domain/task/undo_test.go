package task

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUndoBuffer_TakeClears(t *testing.T) {
	buf := newUndoBuffer(time.Minute, nil)
	buf.Put(Task{ID: "1", Title: "one"})

	got, ok := buf.Take()
	require.True(t, ok)
	require.Equal(t, "one", got.Title)

	_, ok = buf.Take()
	require.False(t, ok)
}

func TestUndoBuffer_HoldsOnlyLatest(t *testing.T) {
	buf := newUndoBuffer(time.Minute, nil)
	buf.Put(Task{ID: "1"})
	buf.Put(Task{ID: "2"})

	got, ok := buf.Take()
	require.True(t, ok)
	require.Equal(t, "2", got.ID)
	_, ok = buf.Pending()
	require.False(t, ok)
}

func TestUndoBuffer_Dismiss(t *testing.T) {
	var expired atomic.Int32
	buf := newUndoBuffer(20*time.Millisecond, func(Task) { expired.Add(1) })
	buf.Put(Task{ID: "1"})

	require.True(t, buf.Dismiss())
	require.False(t, buf.Dismiss())

	time.Sleep(60 * time.Millisecond)
	require.Zero(t, expired.Load(), "dismissed entry must not expire")
}

func TestUndoBuffer_Expires(t *testing.T) {
	var expired atomic.Int32
	buf := newUndoBuffer(10*time.Millisecond, func(Task) { expired.Add(1) })
	buf.Put(Task{ID: "1"})

	require.Eventually(t, func() bool { return expired.Load() == 1 }, time.Second, 5*time.Millisecond)
	_, ok := buf.Take()
	require.False(t, ok)
}

func TestUndoBuffer_ReplacingCancelsPreviousTimer(t *testing.T) {
	var expired atomic.Int32
	buf := newUndoBuffer(40*time.Millisecond, func(Task) { expired.Add(1) })
	buf.Put(Task{ID: "1"})
	time.Sleep(20 * time.Millisecond)
	buf.Put(Task{ID: "2"})

	require.Eventually(t, func() bool { return expired.Load() >= 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(1), expired.Load())
}
