package cli

import (
	"github.com/spf13/cobra"
)

// GlobalFlags holds global flag values
type GlobalFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

// RunFlags holds the flags of the root action command
type RunFlags struct {
	DirA         string
	DirB         string
	Action       string
	Confirmation bool
	MergeDir     string
	Hash         string
	Exclude      []string
	Parallel     bool
	Bandwidth    string
	Output       string
	Report       string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

// AddGlobalFlags adds global flags to the root command
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVar(
		&flags.ConfigFile,
		"config",
		"",
		"YAML config file (none is read unless given)",
	)
	cmd.PersistentFlags().BoolVarP(
		&flags.Verbose,
		"verbose",
		"v",
		false,
		"verbose output",
	)
	cmd.PersistentFlags().BoolVarP(
		&flags.Quiet,
		"quiet",
		"q",
		false,
		"suppress non-error output",
	)
}

// addRunFlags registers the action flags
func addRunFlags(cmd *cobra.Command, flags *RunFlags) {
	cmd.Flags().StringVarP(&flags.DirA, "dirA", "A", "", "directory A (required)")
	cmd.Flags().StringVarP(&flags.DirB, "dirB", "B", "", "directory B (required)")
	cmd.Flags().StringVar(&flags.Action, "action", "", "action: diff | equal | merge_into_a (delete from B) | merge_into_b (delete from A) | merge (requires --merge)")
	cmd.Flags().BoolVarP(&flags.Confirmation, "confirmation", "c", false, "ask before deleting each file: true | false")
	cmd.Flags().StringVarP(&flags.MergeDir, "merge", "m", "", "merge A and B into DIR, moving files out of A and B")

	// --confirmation takes an explicit value, as in "--confirmation true"
	cmd.Flags().Lookup("confirmation").NoOptDefVal = ""

	cmd.Flags().StringVar(&flags.Hash, "hash", "", "digest algorithm: sha256, md5, blake3 (default sha256)")
	cmd.Flags().StringSliceVar(&flags.Exclude, "exclude", []string{}, "base-name glob patterns to skip")
	cmd.Flags().BoolVar(&flags.Parallel, "parallel", false, "index both directories concurrently")
	cmd.Flags().StringVar(&flags.Bandwidth, "bandwidth", "", "read limit while hashing (e.g., \"10M\", \"1G\")")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().StringVar(&flags.Report, "report", "", "also write the run report to a file (.json for JSON)")

	// Logging flags
	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "write logs to file (enables logging)")
	cmd.Flags().StringVar(&flags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "", "log level: debug, info, warn, error")
}
