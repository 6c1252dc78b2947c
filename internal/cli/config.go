package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/hashmerge/pkg/config"
	"github.com/sdejongh/hashmerge/pkg/models"
)

// NewConfigCommand creates the config command
func NewConfigCommand(global *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View or create a hashmerge configuration file.
A configuration file is only read when named with --config.`,
	}

	cmd.AddCommand(newConfigShowCommand(global))
	cmd.AddCommand(newConfigInitCommand(global))

	return cmd
}

func newConfigShowCommand(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(global)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			bandwidth := cfg.Index.BandwidthLimit
			if bandwidth == "" {
				bandwidth = "unlimited"
			}
			logFile := cfg.Logging.File
			if logFile == "" {
				logFile = "(disabled)"
			}

			fmt.Fprintf(out, "Hash Algorithm: %s\n", cfg.Index.Algorithm)
			fmt.Fprintf(out, "Buffer Size: %d\n", cfg.Index.BufferSize)
			fmt.Fprintf(out, "Parallel Indexing: %t\n", cfg.Index.Parallel)
			fmt.Fprintf(out, "Bandwidth Limit: %s\n", bandwidth)
			fmt.Fprintf(out, "Exclude: %s\n", strings.Join(cfg.Index.Exclude, ", "))
			fmt.Fprintf(out, "Confirmation: %t\n", cfg.Prompt.Confirmation)
			fmt.Fprintf(out, "Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "Log File: %s\n", logFile)
			fmt.Fprintf(out, "Log Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init [FILE]",
		Short: "Create default configuration file",
		Long: `Write the default configuration to FILE, or to the path given with --config.
An existing file is never replaced.`,
		Args: configInitArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := global.ConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return &models.ValidationError{
					Field:   "config",
					Message: "no file given, pass a path or --config",
				}
			}

			if err := config.Init(config.Default(), path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}
}

func configInitArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return noArgs(cmd, args[1:])
	}
	return nil
}
