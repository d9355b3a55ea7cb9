package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/leapstack-labs/dtsstyle/internal/discover"
)

// watchDebounce groups the bursts of events editors produce on save.
const watchDebounce = 100 * time.Millisecond

// watch checks args once and again after every change below them, until
// ctx is cancelled.
func (c *checkRun) watch(ctx context.Context, args []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, arg := range args {
		if err := watchPath(watcher, arg); err != nil {
			return fmt.Errorf("failed to watch %s: %w", arg, err)
		}
	}

	c.recheck(ctx, args)
	c.logger.Info("watching for changes", slog.Any("paths", args))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchPath(watcher, event.Name); err != nil {
						c.logger.Warn("cannot watch new directory", slog.String("path", event.Name), slog.String("error", err.Error()))
					}
					pending = time.After(watchDebounce)
					continue
				}
			}
			if !relevantEvent(event) {
				continue
			}
			c.logger.Debug("change detected", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			pending = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn("watcher error", slog.String("error", err.Error()))

		case <-pending:
			pending = nil
			c.recheck(ctx, args)
		}
	}
}

// recheck runs one pass, keeping findings and unreadable files from ending
// the watch.
func (c *checkRun) recheck(ctx context.Context, args []string) {
	err := c.once(ctx, args)
	switch {
	case err == nil, errors.Is(err, ErrIssuesFound), errors.Is(err, ErrCheckFailed):
	case ctx.Err() != nil:
	default:
		c.logger.Error("check failed", slog.String("error", err.Error()))
	}
}

func relevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return discover.IsSource(filepath.Base(event.Name))
}

// watchPath watches a directory tree, or the directory holding a file so
// that editors replacing the file are noticed.
func watchPath(watcher *fsnotify.Watcher, path string) error {
	if path == discover.StdinPath {
		return errors.New("standard input cannot be watched")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && len(d.Name()) > 1 && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}
