// Package watch re-runs partition table checks whenever the table changes.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/deploymenttheory/go-partcheck/pkg/app"
	"github.com/deploymenttheory/go-partcheck/pkg/app/check"
)

// DefaultDebounce collapses editor save bursts into one check
const DefaultDebounce = 200 * time.Millisecond

// Request represents a watch request
type Request struct {
	Path     string
	Debounce time.Duration
}

// ReportFunc receives the outcome of every check run
type ReportFunc func(resp *check.Response, err error)

// Validate validates a watch request
func (r *Request) Validate() error {
	if r.Path == "" {
		return app.NewError(app.ErrCodeInvalidInput, "partition table path is required", nil)
	}
	if r.Debounce < 0 {
		return app.NewError(app.ErrCodeInvalidInput, "debounce must not be negative", nil)
	}
	return nil
}

// Handle checks the table once, then again after every change, until ctx is
// cancelled. The parent directory is watched so that editors which replace the
// file on save are still picked up.
func Handle(ctx *app.Context, req *Request, report ReportFunc) error {
	if err := req.Validate(); err != nil {
		return err
	}

	target, err := filepath.Abs(req.Path)
	if err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid partition table path", err)
	}
	debounce := req.Debounce
	if debounce == 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		return app.NewError(app.ErrCodeFileAccess, "failed to watch "+dir, err)
	}

	runCheck := func() {
		resp, err := check.Handle(ctx, &check.Request{Path: req.Path})
		report(resp, err)
	}

	ctx.Log("Watching partition table", zap.String("path", target), zap.Duration("debounce", debounce))
	runCheck()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			ctx.Log("Watch stopped", zap.String("path", target))
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !relevant(event) {
				continue
			}
			ctx.Log("Partition table changed", zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			ctx.Warn("Watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			runCheck()
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
