package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sdejongh/hashmerge/pkg/config"
	"github.com/sdejongh/hashmerge/pkg/digest"
	"github.com/sdejongh/hashmerge/pkg/index"
	"github.com/sdejongh/hashmerge/pkg/logging"
	"github.com/sdejongh/hashmerge/pkg/models"
	"github.com/sdejongh/hashmerge/pkg/output"
	"github.com/sdejongh/hashmerge/pkg/prompt"
	"github.com/sdejongh/hashmerge/pkg/ratelimit"
	"github.com/sdejongh/hashmerge/pkg/setops"
	"github.com/sdejongh/hashmerge/pkg/storage"
)

// NewRootCommand creates the hashmerge command with its subcommands
func NewRootCommand() *cobra.Command {
	var (
		global GlobalFlags
		flags  RunFlags
	)

	cmd := &cobra.Command{
		Use:   "hashmerge",
		Short: "Compare and merge two directories by content",
		Long: `hashmerge indexes the files directly inside two directories by content
digest and reports or acts on the result:

  equal         list files present in both directories
  diff          list files whose content exists in only one directory
  merge_into_a  delete B's copies of files that A already has
  merge_into_b  delete A's copies of files that B already has
  merge         move A and the unique files of B into a merge directory`,
		Example: `  hashmerge -A photos -B backup --action equal
  hashmerge -A photos -B backup --action merge_into_a --confirmation true
  hashmerge -A photos -B backup --action merge --merge all-photos`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Args:          noArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, &flags, &global)
		},
	}

	AddGlobalFlags(cmd, &global)
	addRunFlags(cmd, &flags)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &models.ValidationError{Field: "flags", Message: err.Error()}
	})

	cmd.AddCommand(NewConfigCommand(&global))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return &models.ValidationError{
			Field:   "args",
			Message: fmt.Sprintf("unexpected argument %q, rerun with --help for more information", args[0]),
		}
	}
	return nil
}

// runAction wires the components for one run and executes it
func runAction(cmd *cobra.Command, flags *RunFlags, global *GlobalFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate flags before anything is read from disk
	run, err := validateRunFlags(flags)
	if err != nil {
		return err
	}

	// Load configuration
	cfg, err := loadConfig(global)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with command-line flags
	if err := applyFlagsToConfig(cmd, cfg, flags, global); err != nil {
		return err
	}
	run.Confirm = cfg.Prompt.Confirmation

	bandwidth, err := config.ParseBandwidthLimit(cfg.Index.BandwidthLimit)
	if err != nil {
		return err
	}

	// Create logger
	logger, err := createLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()
	logger = logger.WithFields(logging.Fields{"run_id": run.ID})

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	// Create output formatter
	resultWriter := stdout
	if cfg.Output.Quiet {
		resultWriter = io.Discard
	}
	formatter, err := output.NewFormatter(cfg.Output.Format, resultWriter, global.Verbose)
	if err != nil {
		return err
	}

	// Questions share stdout with the result lines, except when stdout
	// carries a JSON document
	promptWriter := stdout
	if formatter.Name() == "json" {
		promptWriter = stderr
	}
	prompter := prompt.NewLinePrompter(cmd.InOrStdin(), promptWriter)

	backend := storage.NewLocal()
	defer backend.Close()

	hasher := digest.NewHasher(cfg.Index.Algorithm, cfg.Index.BufferSize)
	if limiter := ratelimit.NewLimiter(bandwidth); limiter != nil {
		hasher.SetLimiter(limiter)
		logger.Debug(ctx, "Hashing reads are rate limited", logging.Fields{
			"bytes_per_second": limiter.BytesPerSecond(),
		})
	}

	indexer := index.NewIndexer(backend, hasher, logger, index.Config{
		Exclude:  cfg.Index.Exclude,
		Parallel: cfg.Index.Parallel,
	})
	if cfg.Output.Progress && formatter.Name() == "human" && output.IsTerminal(stderr) {
		progress := output.NewIndexProgress(stderr)
		defer progress.Finish()
		indexer.SetObserver(progress)
	}

	engine := setops.NewEngine(indexer, backend, formatter, prompter, logger, run)

	report, runErr := engine.Run(ctx, run.Action)

	if flags.Report != "" && report != nil {
		if err := output.WriteReport(report, flags.Report, reportFormat(flags.Report)); err != nil {
			logger.Error(ctx, "Failed to write report", err, logging.Fields{"path": flags.Report})
			if runErr == nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
		}
	}

	return runErr
}
