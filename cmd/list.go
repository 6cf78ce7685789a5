package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-partcheck/pkg/analysis"
	"github.com/deploymenttheory/go-partcheck/pkg/app"
	"github.com/deploymenttheory/go-partcheck/pkg/app/check"
	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// listOptions holds flags for the list command only
type listOptions struct {
	byOffset bool
	ptype    string
	subtype  string
}

func newListCmd(global *globalOptions) *cobra.Command {
	opts := &listOptions{}

	listCmd := &cobra.Command{
		Use:   "list [partitions.csv]",
		Short: "List partitions without running checks",
		Long: `List the partitions of a table.

Examples:
  # List partitions in table order
  partcheck list

  # List app partitions in flash order
  partcheck list boards/s3/partitions.csv --type app --by-offset`,

		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, global, opts, tablePath(args))
		},
	}

	listCmd.Flags().BoolVar(&opts.byOffset, "by-offset", false, "sort by flash offset")
	listCmd.Flags().StringVar(&opts.ptype, "type", "", "only list partitions of this type")
	listCmd.Flags().StringVar(&opts.subtype, "subtype", "", "only list partitions of this subtype")

	return listCmd
}

func runList(cmd *cobra.Command, global *globalOptions, opts *listOptions, path string) error {
	ctx, _, cleanup, err := newAppContext(cmd, global)
	if err != nil {
		return err
	}
	defer cleanup()

	if !app.ValidOutputFormat(ctx.OutputFormat) {
		return app.NewError(app.ErrCodeInvalidInput, "unsupported output format: "+ctx.OutputFormat, nil)
	}

	table, err := partition.ParseFile(path)
	switch {
	case errors.Is(err, partition.ErrFileNotFound):
		return app.NewError(app.ErrCodeFileNotFound, "partition table "+path+" does not exist", err)
	case errors.Is(err, partition.ErrNoPartitions):
		return app.NewError(app.ErrCodeNoPartitions, "no valid partition configuration found in "+path, err)
	case err != nil:
		return app.NewError(app.ErrCodeFileAccess, "failed to read partition table", err)
	}

	entries := table.Entries
	if opts.byOffset {
		entries = analysis.SortByOffset(entries)
	}

	filtered := make([]partition.Entry, 0, len(entries))
	for _, e := range entries {
		if opts.ptype != "" && e.Type != opts.ptype {
			continue
		}
		if opts.subtype != "" && e.SubType != opts.subtype {
			continue
		}
		filtered = append(filtered, e)
	}

	return check.FormatEntries(ctx.Out, filtered, check.FormatOptions{Format: ctx.OutputFormat, NoColor: ctx.NoColor})
}
