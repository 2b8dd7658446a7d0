package commands

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce groups bursts of writes (editors often write twice).
const watchDebounce = 100 * time.Millisecond

// watchFiles watches paths and calls onChange for every matching file that
// is written or created, until ctx is cancelled.
func watchFiles(ctx context.Context, paths, exts []string, logger *slog.Logger, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	explicit := make(map[string]bool)
	watchAll := false
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("cannot watch %s: %w", p, err)
		}
		if info.IsDir() {
			watchAll = true
			if err := watchDir(watcher, p); err != nil {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
			continue
		}
		explicit[filepath.Clean(p)] = true
		if err := watcher.Add(filepath.Dir(p)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	match := func(name string) bool {
		name = filepath.Clean(name)
		return explicit[name] || (watchAll && hasExtension(name, exts))
	}

	var addDir func(string) error
	if watchAll {
		addDir = func(dir string) error { return watchDir(watcher, dir) }
	}

	logger.Info("watching for changes", slog.Int("paths", len(paths)))
	watchLoop(ctx, watcher.Events, watcher.Errors, match, addDir, watchDebounce, logger, onChange)
	return nil
}

// watchDir recursively adds a directory to the watcher, skipping hidden
// directories below the root.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// watchLoop handles file system events. Changed files are collected until no
// event arrives for debounce, then onChange runs once per file in path order.
// When addDir is set, created directories are passed to it and the matching
// files already inside them count as changed.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	match func(string) bool,
	addDir func(string) error,
	debounce time.Duration,
	logger *slog.Logger,
	onChange func(path string),
) {
	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	flush := func() {
		names := make([]string, 0, len(pending))
		for name := range pending {
			names = append(names, name)
		}
		sort.Strings(names)
		clear(pending)
		for _, name := range names {
			logger.Debug("change detected", slog.String("path", name))
			onChange(name)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			queued := false
			if event.Op&fsnotify.Create != 0 && addDir != nil && isDir(event.Name) {
				if err := addDir(event.Name); err != nil {
					logger.Warn("cannot watch new directory", slog.String("path", event.Name), slog.String("error", err.Error()))
				}
				// Files written before the directory was added raise no events.
				_ = filepath.WalkDir(event.Name, func(path string, d fs.DirEntry, err error) error {
					if err == nil && !d.IsDir() && match(path) {
						pending[filepath.Clean(path)] = true
						queued = true
					}
					return nil
				})
			} else if match(event.Name) {
				pending[filepath.Clean(event.Name)] = true
				queued = true
			}
			if !queued {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			flush()

		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Warn("watcher error", slog.String("error", err.Error()))
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
