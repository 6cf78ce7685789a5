package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deploymenttheory/go-partcheck/pkg/app"
	"github.com/deploymenttheory/go-partcheck/pkg/app/check"
	"github.com/deploymenttheory/go-partcheck/pkg/app/watch"
)

func newWatchCmd(global *globalOptions) *cobra.Command {
	var debounce time.Duration

	watchCmd := &cobra.Command{
		Use:   "watch [partitions.csv]",
		Short: "Re-check the partition table every time it changes",
		Long: `Check the partition table, then keep watching it and print a fresh report
after each change. Stop with Ctrl-C.

Examples:
  partcheck watch
  partcheck watch boards/s3/partitions.csv --debounce 500ms`,

		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := tablePath(args)

			ctx, cfg, cleanup, err := newAppContext(cmd, global)
			if err != nil {
				return err
			}
			defer cleanup()

			if !cmd.Flags().Changed("debounce") {
				debounce = cfg.WatchDebounce
			}

			signalCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx.Context = signalCtx

			out := ctx.Out
			formatOpts := check.FormatOptions{Format: ctx.OutputFormat, NoColor: ctx.NoColor}

			return watch.Handle(ctx, &watch.Request{Path: path, Debounce: debounce}, func(resp *check.Response, err error) {
				switch {
				case app.ErrorCode(err) == app.ErrCodeFileNotFound:
					check.FormatMissing(out, path, formatOpts)
				case resp != nil:
					if ferr := check.FormatOutput(out, resp, formatOpts); ferr != nil {
						ctx.Warn("Failed to render report", zap.Error(ferr))
					}
				}
				if err != nil {
					ctx.Warn("Check failed", zap.Error(err))
				}
			})
		},
	}

	watchCmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "wait this long after the last change before re-checking")

	return watchCmd
}
