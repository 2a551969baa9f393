package task

import "math"

// ROI returns revenue per hour. It is zero whenever timeTaken is not a
// positive finite number, and never NaN or infinite.
func ROI(revenue, timeTaken float64) float64 {
	if !finite(timeTaken) || timeTaken <= 0 {
		return 0
	}
	if !finite(revenue) {
		return 0
	}
	roi := revenue / timeTaken
	if !finite(roi) {
		return 0
	}
	return roi
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sanitizeAmount coerces malformed numeric input to zero.
func sanitizeAmount(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return v
}

// sanitizeHours keeps negative hours (ROI treats them as zero) but drops
// values that cannot be serialized.
func sanitizeHours(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}
