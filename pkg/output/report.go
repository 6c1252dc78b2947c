package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdejongh/hashmerge/pkg/models"
)

// WriteReport saves a run report to path in the given format
// ("json" or "human")
func WriteReport(report *models.Report, path, format string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		err = writeJSON(file, report)
	case "", "human":
		err = writeSummary(file, report)
	default:
		return &models.ValidationError{Field: "report", Message: fmt.Sprintf("invalid format '%s'", format)}
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return file.Close()
}
