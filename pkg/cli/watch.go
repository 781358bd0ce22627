package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nigelhorne/schema-validator/pkg/observability"
	"github.com/nigelhorne/schema-validator/pkg/report"
)

// watchDebounce collapses the burst of events an editor save produces
const watchDebounce = 200 * time.Millisecond

// watch validates path once and again after every change until ctx is
// cancelled. It returns the status of the last completed run.
func (r *runner) watch(ctx context.Context, path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return report.ExitFailure, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return report.ExitFailure, fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory; editors often replace the file rather than write it
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return report.ExitFailure, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	code, err := r.run(ctx, path)
	if err != nil {
		r.logger.WithError(err).Warn("validation failed")
	}

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	r.logger.WithField("file", abs).Info("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return code, nil

		case event, ok := <-watcher.Events:
			if !ok {
				return code, nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				timer.Reset(watchDebounce)
			}

		case <-timer.C:
			fmt.Fprintf(r.stdout, "\n--- %s changed, re-validating ---\n", path)
			code = r.rerun(ctx, path, code)

		case err, ok := <-watcher.Errors:
			if !ok {
				return code, nil
			}
			r.logger.WithError(err).Warn("watcher error")
		}
	}
}

// rerun keeps the watch loop alive across a failed or panicking run
func (r *runner) rerun(ctx context.Context, path string, previous int) (code int) {
	code = previous
	defer observability.RecoverPanic(r.logger, "re-validate "+path)

	next, err := r.run(ctx, path)
	if err != nil {
		r.logger.WithError(err).Warn("validation failed")
		return previous
	}
	return next
}
