package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"geiger/internal/core/watcher"
	"geiger/internal/engine/graph"
	"geiger/internal/shared/util"
)

// Watch runs a scan, then re-runs it whenever a Rust source or manifest
// under the workspace changes, until ctx is done. Each result is passed to
// emit. Re-scans are spaced at least watch.min_interval apart.
func (a *App) Watch(ctx context.Context, manifestPath string, emit func(*Report, error)) error {
	m, err := graph.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	emit(a.Run(ctx, manifestPath))

	changes := make(chan []string, 1)
	w, err := watcher.NewWatcher(a.Config.Watch.Debounce, a.Config.Exclude.Dirs, a.Config.Exclude.Files, func(paths []string) {
		select {
		case changes <- paths:
		default:
			// A re-scan is already queued and will see these files too.
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()
	w.SetFilters(watcher.DefaultExtensions, append([]string{filepath.Base(manifestPath)}, watcher.DefaultFilenames...))

	if err := w.Watch(watchPaths(manifestPath, m)); err != nil {
		return err
	}

	limiter := util.NewIntervalLimiter(a.Config.Watch.MinInterval)
	limiter.Allow(1)
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-changes:
			slog.Info("changes detected", "files", len(paths))
			if err := limiter.Wait(ctx, 1); err != nil {
				return nil
			}
			emit(a.Run(ctx, manifestPath))
		}
	}
}

func watchPaths(manifestPath string, m *graph.Manifest) []string {
	seen := map[string]bool{manifestPath: true}
	paths := []string{manifestPath}
	for _, p := range m.Packages {
		dir := m.PackageDir(p)
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if !seen[dir] {
			seen[dir] = true
			paths = append(paths, dir)
		}
	}
	return paths
}
