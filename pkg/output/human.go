package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sdejongh/hashmerge/pkg/models"
)

// HumanFormatter prints one line per finding or side effect as it happens
type HumanFormatter struct {
	writer  io.Writer
	verbose bool
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter(writer io.Writer, verbose bool) *HumanFormatter {
	if writer == nil {
		writer = os.Stdout
	}
	return &HumanFormatter{writer: writer, verbose: verbose}
}

// Identical reports a pair of files with the same content
func (f *HumanFormatter) Identical(pair models.FilePair) error {
	_, err := fmt.Fprintf(f.writer, "The files '%s' and '%s' are identical\n", pair.PathA, pair.PathB)
	return err
}

// Unique reports a file without a counterpart
func (f *HumanFormatter) Unique(path, dirA, dirB string) error {
	_, err := fmt.Fprintf(f.writer, "The file '%s' is unique in the directories '%s' and '%s'\n", path, dirA, dirB)
	return err
}

// Deleting announces a removal
func (f *HumanFormatter) Deleting(path string) error {
	_, err := fmt.Fprintf(f.writer, "Deleting '%s'.\n", path)
	return err
}

// Moving announces a move
func (f *HumanFormatter) Moving(source, dest string) error {
	_, err := fmt.Fprintf(f.writer, "Moving '%s' to '%s'\n", source, dest)
	return err
}

// Complete prints a summary in verbose mode only
func (f *HumanFormatter) Complete(report *models.Report) error {
	if !f.verbose {
		return nil
	}
	return writeSummary(f.writer, report)
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// writeSummary prints the counters of a report
func writeSummary(w io.Writer, report *models.Report) error {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Action '%s' completed in %s\n", report.Action, report.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Indexed:\n")
	fmt.Fprintf(w, "    %-15s %d files\n", report.DirA, report.FilesA)
	fmt.Fprintf(w, "    %-15s %d files\n", report.DirB, report.FilesB)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Findings:\n")
	fmt.Fprintf(w, "    Identical pairs:    %d\n", len(report.Identical))
	fmt.Fprintf(w, "    Unique in A:        %d\n", len(report.UniqueA))
	fmt.Fprintf(w, "    Unique in B:        %d\n", len(report.UniqueB))

	if report.Action.Destructive() {
		fmt.Fprintf(w, "\n")
		fmt.Fprintf(w, "  Operations:\n")
		fmt.Fprintf(w, "    Files deleted:      %d\n", len(report.Deleted))
		fmt.Fprintf(w, "    Deletions skipped:  %d\n", len(report.Skipped))
		fmt.Fprintf(w, "    Files moved:        %d\n", len(report.Moves))
		fmt.Fprintf(w, "    Left behind:        %d\n", len(report.LeftBehind))
	}

	fmt.Fprintf(w, "\n")
	_, err := fmt.Fprintf(w, "Status: %s\n", report.Status)

	if report.Error != "" {
		_, err = fmt.Fprintf(w, "Error: %s\n", report.Error)
	}

	return err
}
