package task

import "time"

// SeedTasks returns the starter list used when nothing has been saved yet.
func SeedTasks(now time.Time) []Task {
	seed := []Task{
		{
			ID:        "seed-1",
			Title:     "Follow up with Acme Corp renewal",
			Revenue:   12000,
			TimeTaken: 6,
			Priority:  PriorityHigh,
			Status:    StatusInProgress,
			Notes:     "Decision maker back from leave next week.",
			CreatedAt: now.Add(-72 * time.Hour),
		},
		{
			ID:        "seed-2",
			Title:     "Demo for Globex onboarding team",
			Revenue:   4500,
			TimeTaken: 3,
			Priority:  PriorityMedium,
			Status:    StatusToDo,
			Notes:     "Prepare reporting module walkthrough.",
			CreatedAt: now.Add(-48 * time.Hour),
		},
		{
			ID:        "seed-3",
			Title:     "Cold outreach: regional retailers",
			Revenue:   800,
			TimeTaken: 10,
			Priority:  PriorityLow,
			Status:    StatusDone,
			Notes:     "",
			CreatedAt: now.Add(-24 * time.Hour),
		},
	}
	for i := range seed {
		seed[i].ROI = ROI(seed[i].Revenue, seed[i].TimeTaken)
	}
	return seed
}
