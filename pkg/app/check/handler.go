package check

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/deploymenttheory/go-partcheck/pkg/analysis"
	"github.com/deploymenttheory/go-partcheck/pkg/app"
	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// Handle parses and analyzes the partition table named by the request.
//
// A missing file returns a FILE_NOT_FOUND error and no response. A file with
// no valid rows returns a NO_PARTITIONS error together with a response holding
// the skipped lines, so callers can still report them.
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateContext(ctx); err != nil {
		return nil, err
	}

	ctx.Log("Checking partition table", zap.String("path", req.Path), zap.String("profile", ctx.Profile.Name))

	table, err := partition.ParseFile(req.Path)
	switch {
	case errors.Is(err, partition.ErrFileNotFound):
		return nil, app.NewError(app.ErrCodeFileNotFound, "partition table "+req.Path+" does not exist", err)
	case errors.Is(err, partition.ErrNoPartitions):
		// handled below, the table still carries line errors
	case err != nil:
		return nil, app.NewError(app.ErrCodeFileAccess, "failed to read partition table", err)
	}

	for _, le := range table.LineErrors {
		ctx.Warn("Skipped malformed line", zap.Int("line", le.Line), zap.String("reason", le.Reason))
	}

	response := &Response{
		ReportID:   uuid.NewString(),
		Source:     req.Path,
		CheckedAt:  startTime.UTC(),
		Profile:    ctx.Profile,
		Entries:    table.Entries,
		LineErrors: table.LineErrors,
	}

	if !response.Valid() {
		response.Duration = time.Since(startTime)
		return response, app.NewError(app.ErrCodeNoPartitions, "no valid partition configuration found in "+req.Path, partition.ErrNoPartitions)
	}

	response.Result = analysis.Run(table, ctx.Profile)
	response.Duration = time.Since(startTime)

	counts := response.Result.Counts()
	ctx.Log("Check completed",
		zap.Int("partitions", len(response.Entries)),
		zap.Int("errors", counts[analysis.SeverityError]),
		zap.Int("warnings", counts[analysis.SeverityWarning]),
		zap.Duration("elapsed", response.Duration))

	return response, nil
}
