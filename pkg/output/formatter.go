package output

import (
	"fmt"
	"io"

	"github.com/sdejongh/hashmerge/pkg/models"
)

// Formatter defines the interface for output formatting
// Implementations include human-readable and JSON formatters
type Formatter interface {
	// Identical reports a file present in both directories
	Identical(pair models.FilePair) error

	// Unique reports a file whose content exists in only one directory
	Unique(path, dirA, dirB string) error

	// Deleting announces a duplicate about to be removed
	Deleting(path string) error

	// Moving announces a file about to be moved into the merge directory
	Moving(source, dest string) error

	// Complete finalizes output once the action has finished
	Complete(report *models.Report) error

	// Name returns the formatter name
	Name() string
}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string, writer io.Writer, verbose bool) (Formatter, error) {
	switch name {
	case "", "human":
		return NewHumanFormatter(writer, verbose), nil
	case "json":
		return NewJSONFormatter(writer), nil
	default:
		return nil, &models.ValidationError{
			Field:   "output",
			Message: fmt.Sprintf("invalid format '%s' (use: human, json)", name),
		}
	}
}
