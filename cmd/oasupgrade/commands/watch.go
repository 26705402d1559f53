package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/erraggy/oasupgrade/upgrader"
	"github.com/fsnotify/fsnotify"
)

// watchFile calls fn once after each burst of writes to path and returns when
// ctx is done. The parent directory is watched so that editors which save by
// renaming a temp file over path are still seen.
func watchFile(ctx context.Context, path string, debounce time.Duration, log upgrader.Logger, fn func()) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}
	log.Debug("watching for changes", "path", target)

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debug("input changed", "path", target, "op", ev.Op.String())
			timer.Reset(debounce)
		case <-timer.C:
			fn()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watcher error", "error", err)
		}
	}
}
