package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rpggio/salestrack/internal/domain/task"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

// Source provides the task view to export.
type Source interface {
	View(ctx context.Context, filter task.Filter) (*task.View, error)
}

// Exporter renders task reports from a Source.
type Exporter struct {
	src   Source
	title string
	now   func() time.Time
}

// NewExporter creates an Exporter reading from src.
func NewExporter(src Source) *Exporter {
	return &Exporter{src: src, title: "Sales Task Report", now: time.Now}
}

// Export renders the sorted task list and the summary in the given format.
func (e *Exporter) Export(ctx context.Context, format string, filter task.Filter) ([]byte, error) {
	view, err := e.src.View(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return e.exportJSON(view)
	case "csv":
		return e.exportCSV(view)
	case "pdf":
		return e.exportPDF(view)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

type jsonReport struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Tasks       []task.Task  `json:"tasks"`
	Summary     task.Summary `json:"summary"`
}

func (e *Exporter) exportJSON(view *task.View) ([]byte, error) {
	tasks := view.Tasks
	if tasks == nil {
		tasks = []task.Task{}
	}
	return json.MarshalIndent(jsonReport{
		GeneratedAt: e.now().UTC(),
		Tasks:       tasks,
		Summary:     view.Summary,
	}, "", "  ")
}

var csvHeader = []string{"id", "title", "priority", "status", "revenue", "time_taken", "roi", "created_at", "notes"}

func (e *Exporter) exportCSV(view *task.View) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write(csvHeader)
	for _, t := range view.Tasks {
		_ = w.Write([]string{
			t.ID,
			t.Title,
			string(t.Priority),
			string(t.Status),
			formatFloat(t.Revenue),
			formatFloat(t.TimeTaken),
			formatFloat(t.ROI),
			t.CreatedAt.UTC().Format(time.RFC3339),
			t.Notes,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return b.Bytes(), nil
}

func (e *Exporter) exportPDF(view *task.View) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, e.title)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(40, 6, "Generated "+e.now().UTC().Format("2006-01-02 15:04 MST"))
	pdf.Ln(10)

	s := view.Summary
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 7, "Summary")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Tasks: %d", s.TaskCount),
		fmt.Sprintf("Total revenue: %.2f", s.TotalRevenue),
		fmt.Sprintf("Total hours: %.2f", s.TotalHours),
		fmt.Sprintf("Average ROI: %.2f", s.AvgROI),
		fmt.Sprintf("Efficiency: %.2f", s.Efficiency),
		fmt.Sprintf("Grade: %s", s.Grade),
	} {
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(40, 7, "Tasks")
	pdf.Ln(7)
	pdf.SetFont("Arial", "", 10)
	if len(view.Tasks) == 0 {
		pdf.Cell(0, 6, "No tasks.")
		pdf.Ln(6)
	}
	for _, t := range view.Tasks {
		line := fmt.Sprintf("[%s] %s (%s) revenue=%.2f hours=%.2f roi=%.2f",
			t.Priority, t.Title, t.Status, t.Revenue, t.TimeTaken, t.ROI)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
