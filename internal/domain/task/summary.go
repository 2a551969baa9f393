package task

// Summarize recomputes the aggregate metrics for tasks.
func Summarize(tasks []Task, scale GradeScale) Summary {
	summary := Summary{
		TaskCount: len(tasks),
		ByStatus:  make(map[Status]int, 3),
	}
	for _, s := range AllStatuses() {
		summary.ByStatus[s] = 0
	}

	var roiSum float64
	for _, t := range tasks {
		summary.TotalRevenue += sanitizeAmount(t.Revenue)
		if t.TimeTaken > 0 && finite(t.TimeTaken) {
			summary.TotalHours += t.TimeTaken
		}
		roiSum += ROI(t.Revenue, t.TimeTaken)
		summary.ByStatus[t.Status]++
	}

	if len(tasks) > 0 {
		summary.AvgROI = roiSum / float64(len(tasks))
	}
	summary.Efficiency = ROI(summary.TotalRevenue, summary.TotalHours)
	summary.Grade = scale.Grade(summary.AvgROI)

	return summary
}
