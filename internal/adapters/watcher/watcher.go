// Package watcher reports changes below the source directories of a site.
package watcher

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/srcset/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// skipDirs are never watched.
var skipDirs = map[string]bool{
	".git":              true,
	".jj":               true,
	"node_modules":      true,
	domain.IndexDirName: true,
}

const eventBuffer = 100

// Watcher watches directory trees recursively with fsnotify.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger ports.Logger
	events chan ports.WatchEvent
}

// NewWatcher creates a Watcher. Filesystem errors are reported to logger.
func NewWatcher(logger ports.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	return &Watcher{
		fsw:    fsw,
		logger: logger,
		events: make(chan ports.WatchEvent, eventBuffer),
	}, nil
}

// Start adds every directory below roots and begins delivering events until
// ctx is done. Missing roots are skipped.
func (w *Watcher) Start(ctx context.Context, roots ...string) error {
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			continue
		}
		for dir := range dirs(root) {
			if err := w.fsw.Add(dir); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "dir", dir)
			}
		}
	}

	go w.loop(ctx)
	return nil
}

// Stop releases the underlying watcher.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

// Events yields events until the watcher stops.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

// dirs yields root and its subdirectories, pruning skipDirs.
// A file root yields its parent directory.
func dirs(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if info, err := os.Stat(root); err == nil && !info.IsDir() {
			yield(filepath.Dir(root))
			return
		}
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable directories are skipped
			}
			if !d.IsDir() {
				return nil
			}
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}
			if !yield(path) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			out, ok := convert(ev)
			if !ok {
				continue
			}

			select {
			case w.events <- out:
			case <-ctx.Done():
				return
			}

			if out.Operation == ports.OpCreate {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !skipDirs[info.Name()] {
					for dir := range dirs(ev.Name) {
						_ = w.fsw.Add(dir)
					}
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("watch: " + err.Error())
			}
		}
	}
}

func convert(ev fsnotify.Event) (ports.WatchEvent, bool) {
	switch {
	case ev.Has(fsnotify.Write):
		return ports.WatchEvent{Path: ev.Name, Operation: ports.OpWrite}, true
	case ev.Has(fsnotify.Create):
		return ports.WatchEvent{Path: ev.Name, Operation: ports.OpCreate}, true
	case ev.Has(fsnotify.Remove):
		return ports.WatchEvent{Path: ev.Name, Operation: ports.OpRemove}, true
	case ev.Has(fsnotify.Rename):
		return ports.WatchEvent{Path: ev.Name, Operation: ports.OpRename}, true
	default:
		return ports.WatchEvent{}, false
	}
}
