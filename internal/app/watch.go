package app

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/srcset/internal/adapters/watcher"
	"go.trai.ch/srcset/internal/core/domain"
	"go.trai.ch/zerr"
)

// Watch builds once, then rebuilds whenever a watched source changes content.
// Build failures are logged and watching continues. It returns when ctx is done.
func (a *App) Watch(ctx context.Context, opts Options) error {
	if a.watcher == nil || a.hasher == nil || a.walker == nil {
		return zerr.With(domain.ErrWatchFailed, "reason", "watch collaborators not configured")
	}

	project, err := a.load(opts)
	if err != nil {
		return err
	}
	a.rebuild(ctx, opts)

	roots := watchRoots(project)
	snapshot := a.snapshot(roots)

	if err := a.watcher.Start(ctx, roots...); err != nil {
		return err
	}
	defer func() { _ = a.watcher.Stop() }()

	window := a.debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}

	changes := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(window, func(paths []string) {
		select {
		case changes <- paths:
		case <-ctx.Done():
		}
	})

	go func() {
		for ev := range a.watcher.Events() {
			if !ignored(project, ev.Path) {
				debouncer.Add(ev.Path)
			}
		}
	}()

	a.logger.Info("watching " + strings.Join(roots, ", "))
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-changes:
			if !a.changed(snapshot, paths) {
				continue
			}
			a.logger.Info("change detected, rebuilding")
			a.rebuild(ctx, opts)
		}
	}
}

func (a *App) rebuild(ctx context.Context, opts Options) {
	project, err := a.load(opts)
	if err == nil {
		_, err = a.build(ctx, project)
	}
	if err != nil && !isCanceled(ctx, err) {
		a.logger.Error(err)
	}
}

// watchRoots are the inputs of a build: the config, the source images, the
// page sources and the data file.
func watchRoots(p *domain.Project) []string {
	seen := make(map[string]bool)
	var roots []string
	add := func(path string) {
		if path != "" && !seen[path] {
			seen[path] = true
			roots = append(roots, path)
		}
	}

	add(filepath.Join(p.Root, domain.ConfigFileName))
	add(p.SourceRoot)
	for _, page := range p.Pages {
		add(filepath.Dir(page.Src))
	}
	add(p.DataFile)
	return roots
}

// ignored drops events for build outputs, which would otherwise retrigger the build.
func ignored(p *domain.Project, path string) bool {
	if within(p.AssetRoot, path) {
		return true
	}
	for _, page := range p.Pages {
		if path == page.Out {
			return true
		}
	}
	return false
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// snapshot hashes every file below roots.
func (a *App) snapshot(roots []string) map[string]string {
	hashes := make(map[string]string)
	for _, root := range roots {
		for path := range a.walker.WalkFiles(root, nil) {
			if h, err := a.hasher.HashFile(path); err == nil {
				hashes[path] = h
			}
		}
	}
	return hashes
}

// changed updates snapshot with paths and reports whether any content differs.
// Touching a file without changing it does not count.
func (a *App) changed(snapshot map[string]string, paths []string) bool {
	changed := false
	for _, path := range paths {
		h, err := a.hasher.HashFile(path)
		if err != nil {
			if _, known := snapshot[path]; known {
				delete(snapshot, path)
				changed = true
			}
			continue
		}
		if snapshot[path] != h {
			snapshot[path] = h
			changed = true
		}
	}
	return changed
}
