// Package logging builds the zap logger used by the CLI.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the log level
type Options struct {
	Verbose bool
	Quiet   bool
}

// Level maps the verbosity flags to a zap level
func (o Options) Level() zapcore.Level {
	switch {
	case o.Quiet:
		return zapcore.ErrorLevel
	case o.Verbose:
		return zapcore.DebugLevel
	default:
		return zapcore.WarnLevel
	}
}

// New returns a console logger writing to stderr
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.Level = zap.NewAtomicLevelAt(opts.Level())
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.DisableStacktrace = true
	if !opts.Verbose {
		config.DisableCaller = true
	}
	return config.Build()
}
