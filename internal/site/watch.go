package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch calls onChange after files under paths change, coalescing bursts
// of events that arrive within debounce of each other. Directories are
// watched non-recursively. Events for files in ignore, or for their
// "-suffix" sidecars such as SQLite's -wal and -journal, are dropped. It
// blocks until ctx is done.
func Watch(ctx context.Context, paths, ignore []string, debounce time.Duration, logger *zap.Logger, onChange func()) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			logger.Debug("not watching missing path", zap.String("path", p))
			continue
		}
		if err := w.Add(filepath.Clean(p)); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if ignored(ev.Name, ignore) {
				continue
			}
			logger.Debug("change detected", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))
		}
	}
}

func ignored(name string, ignore []string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		abs = filepath.Clean(name)
	}
	for _, p := range ignore {
		ip, err := filepath.Abs(p)
		if err != nil {
			ip = filepath.Clean(p)
		}
		if abs == ip || strings.HasPrefix(abs, ip+"-") {
			return true
		}
	}
	return false
}
