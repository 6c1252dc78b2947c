package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sdejongh/hashmerge/pkg/models"
)

// JSONFormatter is silent while running and writes a single document
// describing the run once it completes
type JSONFormatter struct {
	writer io.Writer
}

// JSONReportData is the document written at completion
type JSONReportData struct {
	RunID      string           `json:"run_id"`
	Action     string           `json:"action"`
	DirA       string           `json:"dir_a"`
	DirB       string           `json:"dir_b"`
	MergeDir   string           `json:"merge_dir,omitempty"`
	StartTime  time.Time        `json:"start_time"`
	Duration   string           `json:"duration"`
	DurationMs int64            `json:"duration_ms"`
	FilesA     int              `json:"files_a"`
	FilesB     int              `json:"files_b"`
	Identical  []JSONPairData   `json:"identical"`
	UniqueA    []string         `json:"unique_a"`
	UniqueB    []string         `json:"unique_b"`
	Deleted    []string         `json:"deleted"`
	Skipped    []string         `json:"skipped"`
	Moves      []JSONMoveData   `json:"moves"`
	LeftBehind []string         `json:"left_behind"`
	Status     models.RunStatus `json:"status"`
	Error      string           `json:"error,omitempty"`
}

// JSONPairData represents two files with identical content
type JSONPairData struct {
	Digest string `json:"digest"`
	PathA  string `json:"path_a"`
	PathB  string `json:"path_b"`
}

// JSONMoveData represents one move of a merge
type JSONMoveData struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(writer io.Writer) *JSONFormatter {
	if writer == nil {
		writer = os.Stdout
	}
	return &JSONFormatter{writer: writer}
}

// Identical is recorded in the report and printed at completion
func (f *JSONFormatter) Identical(pair models.FilePair) error { return nil }

// Unique is recorded in the report and printed at completion
func (f *JSONFormatter) Unique(path, dirA, dirB string) error { return nil }

// Deleting is recorded in the report and printed at completion
func (f *JSONFormatter) Deleting(path string) error { return nil }

// Moving is recorded in the report and printed at completion
func (f *JSONFormatter) Moving(source, dest string) error { return nil }

// Complete writes the report document
func (f *JSONFormatter) Complete(report *models.Report) error {
	return writeJSON(f.writer, report)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}

// toJSONReport converts a report, using empty lists instead of null
func toJSONReport(report *models.Report) JSONReportData {
	data := JSONReportData{
		RunID:      report.RunID,
		Action:     report.Action.String(),
		DirA:       report.DirA,
		DirB:       report.DirB,
		MergeDir:   report.MergeDir,
		StartTime:  report.StartTime,
		Duration:   report.Duration.Round(time.Millisecond).String(),
		DurationMs: report.Duration.Milliseconds(),
		FilesA:     report.FilesA,
		FilesB:     report.FilesB,
		Identical:  make([]JSONPairData, 0, len(report.Identical)),
		UniqueA:    nonNil(report.UniqueA),
		UniqueB:    nonNil(report.UniqueB),
		Deleted:    nonNil(report.Deleted),
		Skipped:    nonNil(report.Skipped),
		Moves:      make([]JSONMoveData, 0, len(report.Moves)),
		LeftBehind: nonNil(report.LeftBehind),
		Status:     report.Status,
		Error:      report.Error,
	}

	for _, p := range report.Identical {
		data.Identical = append(data.Identical, JSONPairData{Digest: p.Digest, PathA: p.PathA, PathB: p.PathB})
	}
	for _, m := range report.Moves {
		data.Moves = append(data.Moves, JSONMoveData{Source: m.Source, Dest: m.Dest})
	}

	return data
}

func writeJSON(w io.Writer, report *models.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toJSONReport(report))
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
