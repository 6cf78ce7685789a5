package check

import (
	"github.com/deploymenttheory/go-partcheck/pkg/app"
)

// Validate validates a check request
func (r *Request) Validate() error {
	if r.Path == "" {
		return app.NewError(app.ErrCodeInvalidInput, "partition table path is required", nil)
	}
	return nil
}

// ValidateContext checks the output and profile settings a run depends on
func ValidateContext(ctx *app.Context) error {
	if !app.ValidOutputFormat(ctx.OutputFormat) {
		return app.NewError(app.ErrCodeInvalidInput, "unsupported output format: "+ctx.OutputFormat, nil)
	}
	if err := ctx.Profile.Validate(); err != nil {
		return app.NewError(app.ErrCodeInvalidConfig, "invalid flash profile", err)
	}
	return nil
}
