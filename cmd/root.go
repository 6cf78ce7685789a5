package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deploymenttheory/go-partcheck/pkg/app"
	"github.com/deploymenttheory/go-partcheck/pkg/app/check"
	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// Version is set at build time
var Version = "0.1.0-dev"

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbose      bool
	quiet        bool
	noColor      bool
	outputFormat string
	configFile   string
	flashSize    string
}

// NewRootCmd builds the command tree. Running the root command checks a table.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "partcheck [partitions.csv]",
		Short: "ESP32S3 flash partition table checker",
		Long: `partcheck is a read-only static analyzer for ESP-IDF style partition
table CSV files. It parses the table, checks for overlapping partitions,
verifies OTA slot redundancy, reports flash utilization against a 16MB
budget and prints sizing recommendations.

The table defaults to partitions.csv in the current directory. The exit code
is 0 whenever at least one valid partition was parsed, warnings included, and
1 when the file is missing or holds no valid partitions.

Examples:
  # Check ./partitions.csv
  partcheck

  # Check a specific table and emit JSON
  partcheck boards/s3/partitions.csv -o json

  # Check against an 8MB part
  partcheck --flash-size 8MB`,

		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, tablePath(args))
		},
	}

	// Only global output control flags
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress log output except errors")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured status glyphs")
	flags.StringVarP(&opts.outputFormat, "output", "o", app.FormatTable, "output format (table, json, yaml)")
	flags.StringVar(&opts.configFile, "config", "", "config file (default searches ./partcheck.yaml)")
	flags.StringVar(&opts.flashSize, "flash-size", "", "override total flash size (16MB, 0x1000000)")

	rootCmd.AddCommand(
		newListCmd(opts),
		newWatchCmd(opts),
		newProfileCmd(opts),
	)

	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with the given arguments and returns the exit code
func Run(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func tablePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return partition.DefaultPath
}

func runCheck(cmd *cobra.Command, opts *globalOptions, path string) error {
	ctx, _, cleanup, err := newAppContext(cmd, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	out := ctx.Out
	formatOpts := check.FormatOptions{Format: ctx.OutputFormat, NoColor: ctx.NoColor}

	response, err := check.Handle(ctx, &check.Request{Path: path})
	if app.ErrorCode(err) == app.ErrCodeFileNotFound {
		check.FormatMissing(out, path, formatOpts)
		return err
	}
	if response != nil {
		if ferr := check.FormatOutput(out, response, formatOpts); ferr != nil {
			return errors.Join(err, ferr)
		}
		ctx.Log(check.FormatSummary(response), zap.String("report_id", response.ReportID))
	}
	return err
}
