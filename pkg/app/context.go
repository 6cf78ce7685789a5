package app

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/deploymenttheory/go-partcheck/pkg/analysis"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool
	NoColor      bool

	// Out receives rendered reports
	Out io.Writer

	// Profile is the flash layout checks are run against
	Profile analysis.FlashProfile

	Logger *zap.Logger
}

// NewContext creates a new application context
func NewContext() *Context {
	return &Context{
		Context:      context.Background(),
		OutputFormat: "table",
		Out:          os.Stdout,
		Profile:      analysis.DefaultProfile(),
		Logger:       zap.NewNop(),
	}
}

// WithCancel creates a cancellable context
func (c *Context) WithCancel() (*Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Context)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// Log outputs a debug message with optional fields
func (c *Context) Log(message string, fields ...zap.Field) {
	c.Logger.Debug(message, fields...)
}

// Warn outputs a warning unless quiet
func (c *Context) Warn(message string, fields ...zap.Field) {
	if !c.Quiet {
		c.Logger.Warn(message, fields...)
	}
}
