package task

import (
	"cmp"
	"slices"
)

// Sort returns a copy of tasks ordered by priority (High first), then by
// creation time, newest first. Ties keep their input order.
func Sort(tasks []Task) []Task {
	sorted := slices.Clone(tasks)
	slices.SortStableFunc(sorted, compareTasks)
	return sorted
}

func compareTasks(a, b Task) int {
	if c := cmp.Compare(b.Priority.rank(), a.Priority.rank()); c != 0 {
		return c
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}
