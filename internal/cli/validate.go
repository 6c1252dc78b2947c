package cli

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/hashmerge/internal/platform"
	"github.com/sdejongh/hashmerge/pkg/config"
	"github.com/sdejongh/hashmerge/pkg/digest"
	"github.com/sdejongh/hashmerge/pkg/logging"
	"github.com/sdejongh/hashmerge/pkg/models"
)

// validateRunFlags checks the command line and builds the run
// configuration. Nothing is read from disk here. Directories are kept as
// typed; they only get cleaned for the same-directory check.
func validateRunFlags(flags *RunFlags) (*models.RunConfig, error) {
	action, err := models.ParseAction(flags.Action)
	if err != nil {
		return nil, err
	}

	for _, p := range []struct{ field, path string }{
		{"dirA", flags.DirA},
		{"dirB", flags.DirB},
		{"merge", flags.MergeDir},
	} {
		if p.path == "" {
			continue
		}
		if err := platform.ValidatePath(p.path); err != nil {
			return nil, &models.ValidationError{Field: p.field, Message: err.Error()}
		}
	}

	rc := &models.RunConfig{
		ID:        uuid.New().String(),
		DirA:      flags.DirA,
		DirB:      flags.DirB,
		MergeDir:  flags.MergeDir,
		Action:    action,
		CreatedAt: time.Now(),
	}

	if err := rc.Validate(); err != nil {
		return nil, err
	}

	return rc, nil
}

// loadConfig reads the file named by --config. Without it the built-in
// defaults apply; no other location is ever consulted.
func loadConfig(global *GlobalFlags) (*config.Config, error) {
	return config.Load(global.ConfigFile)
}

// applyFlagsToConfig overrides config values with the flags that were set
func applyFlagsToConfig(cmd *cobra.Command, cfg *config.Config, flags *RunFlags, global *GlobalFlags) error {
	changed := cmd.Flags().Changed

	if changed("confirmation") {
		cfg.Prompt.Confirmation = flags.Confirmation
	}

	if changed("hash") {
		algorithm, err := digest.ParseAlgorithm(flags.Hash)
		if err != nil {
			return &models.ValidationError{Field: "hash", Message: err.Error()}
		}
		cfg.Index.Algorithm = algorithm
	}

	if len(flags.Exclude) > 0 {
		cfg.Index.Exclude = flags.Exclude
	}

	if changed("parallel") {
		cfg.Index.Parallel = flags.Parallel
	}

	if changed("bandwidth") {
		cfg.Index.BandwidthLimit = flags.Bandwidth
	}

	if flags.Output != "" {
		cfg.Output.Format = flags.Output
	}

	if flags.LogFile != "" {
		cfg.Logging.File = flags.LogFile
	}
	if flags.LogFormat != "" {
		cfg.Logging.Format = flags.LogFormat
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}

	// Disable progress in quiet mode
	if global.Quiet {
		cfg.Output.Progress = false
		cfg.Output.Quiet = true
	}

	return cfg.Validate()
}

// createLogger creates a logger based on configuration
func createLogger(cfg config.LoggingConfig) (logging.Logger, error) {
	// If no log file specified, return null logger
	if cfg.File == "" {
		return logging.NewNullLogger(), nil
	}

	var format logging.Format
	switch cfg.Format {
	case "json":
		format = logging.FormatJSON
	default:
		format = logging.FormatText
	}

	return logging.NewFileLogger(logging.FileLoggerConfig{
		Path:       cfg.File,
		Format:     format,
		Level:      logging.ParseLevel(cfg.Level),
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
	})
}

// reportFormat picks the report file format from its extension
func reportFormat(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return "json"
	}
	return "human"
}
