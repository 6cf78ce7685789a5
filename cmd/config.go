package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-partcheck/internal/config"
	"github.com/deploymenttheory/go-partcheck/internal/logging"
	"github.com/deploymenttheory/go-partcheck/pkg/app"
)

// loadConfig resolves config file and environment settings, then applies any
// flags the user set explicitly on top.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.Config, string, error) {
	cfg, v, err := config.Load(config.LoadOptions{File: opts.configFile})
	if err != nil {
		return nil, "", app.NewError(app.ErrCodeInvalidConfig, "failed to load configuration", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = opts.outputFormat
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.noColor
	}
	if flags.Changed("flash-size") {
		size, err := config.ParseSize(opts.flashSize)
		if err != nil {
			return nil, "", app.NewError(app.ErrCodeInvalidInput, "invalid --flash-size", err)
		}
		cfg.Profile.FlashSize = size
	}

	return cfg, v.ConfigFileUsed(), nil
}

// newAppContext builds the application context for a command run.
// The returned cleanup flushes the logger.
func newAppContext(cmd *cobra.Command, opts *globalOptions) (*app.Context, *config.Config, func(), error) {
	cfg, _, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(logging.Options{Verbose: opts.verbose, Quiet: opts.quiet})
	if err != nil {
		return nil, nil, nil, err
	}

	ctx := app.NewContext()
	ctx.Context = cmd.Context()
	ctx.OutputFormat = cfg.Output
	ctx.Verbose = opts.verbose
	ctx.Quiet = opts.quiet
	ctx.NoColor = cfg.NoColor
	ctx.Out = cmd.OutOrStdout()
	ctx.Profile = cfg.Profile
	ctx.Logger = logger

	cleanup := func() { _ = logger.Sync() }
	return ctx, cfg, cleanup, nil
}
