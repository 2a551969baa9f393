package task

import (
	"fmt"
	"math"
	"strings"
)

// GradeBand assigns Grade to any average ROI at or above MinROI.
type GradeBand struct {
	MinROI float64 `yaml:"min_roi" json:"min_roi"`
	Grade  string  `yaml:"grade" json:"grade"`
}

// GradeScale is a step function from average ROI to a letter grade.
// Bands are ordered by strictly descending MinROI.
type GradeScale struct {
	Bands []GradeBand `yaml:"bands" json:"bands"`
	Floor string      `yaml:"floor" json:"floor"`
}

// DefaultGradeScale returns the stock grade thresholds.
func DefaultGradeScale() GradeScale {
	return GradeScale{
		Bands: []GradeBand{
			{MinROI: 1000, Grade: "A+"},
			{MinROI: 500, Grade: "A"},
			{MinROI: 200, Grade: "B"},
			{MinROI: 100, Grade: "C"},
			{MinROI: 50, Grade: "D"},
		},
		Floor: "F",
	}
}

// Validate checks that thresholds are finite, strictly descending and named.
func (g GradeScale) Validate() error {
	if strings.TrimSpace(g.Floor) == "" {
		return fmt.Errorf("%w: floor grade is empty", ErrInvalidGradeScale)
	}
	for i, band := range g.Bands {
		if strings.TrimSpace(band.Grade) == "" {
			return fmt.Errorf("%w: band %d has no grade", ErrInvalidGradeScale, i)
		}
		if !finite(band.MinROI) {
			return fmt.Errorf("%w: band %q threshold is not finite", ErrInvalidGradeScale, band.Grade)
		}
		if i > 0 && band.MinROI >= g.Bands[i-1].MinROI {
			return fmt.Errorf("%w: band %q threshold %.2f is not below %.2f",
				ErrInvalidGradeScale, band.Grade, band.MinROI, g.Bands[i-1].MinROI)
		}
	}
	return nil
}

// Grade maps an average ROI onto the scale. NaN maps to the floor.
func (g GradeScale) Grade(avgROI float64) string {
	if math.IsNaN(avgROI) {
		return g.Floor
	}
	for _, band := range g.Bands {
		if avgROI >= band.MinROI {
			return band.Grade
		}
	}
	return g.Floor
}
