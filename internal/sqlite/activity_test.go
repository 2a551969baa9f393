package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/salestrack/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	taskID := "t1"
	entry1 := &activity.ActivityEntry{
		TaskID:       &taskID,
		ActivityType: activity.TypeTaskCreated,
		Summary:      "Created task",
		Details:      `{"id":"t1"}`,
	}
	entry2 := &activity.ActivityEntry{
		TaskID:       &taskID,
		ActivityType: activity.TypeTaskDeleted,
		Summary:      "Deleted task",
	}

	require.NoError(t, repo.Log(ctx, entry1))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)
	require.False(t, entry1.CreatedAt.IsZero())

	entries, err := repo.List(ctx, activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
	require.Equal(t, `{"id":"t1"}`, entries[1].Details)
	require.NotNil(t, entries[0].TaskID)
	require.Equal(t, "t1", *entries[0].TaskID)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	taskID := "t1"
	otherID := "t2"
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{TaskID: &taskID, ActivityType: activity.TypeTaskUpdated, Summary: "u1"}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{TaskID: &otherID, ActivityType: activity.TypeTaskUpdated, Summary: "u2"}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{ActivityType: activity.TypeTasksLoaded, Summary: "loaded"}))

	activityType := activity.TypeTaskUpdated
	entries, err := repo.List(ctx, activity.ListActivityOptions{TaskID: &taskID, ActivityType: &activityType})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "u1", entries[0].Summary)

	loaded := activity.TypeTasksLoaded
	entries, err = repo.List(ctx, activity.ListActivityOptions{ActivityType: &loaded})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].TaskID)
}

func TestActivityRepository_Pagination(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
			ActivityType: activity.TypeTaskCreated,
			Summary:      string(rune('a' + i)),
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := repo.List(ctx, activity.ListActivityOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "d", entries[0].Summary)
	require.Equal(t, "c", entries[1].Summary)
}
