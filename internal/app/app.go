// Package app implements the application layer for clientfn.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"

	"clientfn.dev/clientfn/internal/adapters/watcher" //nolint:depguard // Debounce window and coalescing live with the watcher
	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
	"clientfn.dev/clientfn/internal/engine/builder"
)

// timeRounding trims timing output to a readable precision.
const timeRounding = time.Millisecond

// App represents the main application logic: one build pipeline plus the
// watch, clean and verify operations around it.
type App struct {
	cfg       domain.Config
	builder   *builder.Builder
	watcher   ports.Watcher
	output    ports.OutputFS
	hasher    ports.Hasher
	infoStore ports.BuildInfoStore
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	cfg domain.Config,
	bld *builder.Builder,
	w ports.Watcher,
	output ports.OutputFS,
	hasher ports.Hasher,
	infoStore ports.BuildInfoStore,
	logger ports.Logger,
) *App {
	return &App{
		cfg:       cfg,
		builder:   bld,
		watcher:   w,
		output:    output,
		hasher:    hasher,
		infoStore: infoStore,
		logger:    logger,
	}
}

// Config returns the loaded configuration. Commands start from it and
// apply their flag overrides.
func (a *App) Config() domain.Config {
	return a.cfg
}

// Build runs one build pass.
func (a *App) Build(ctx context.Context, opts domain.BuildOptions) (domain.BuildResult, error) {
	result, err := a.builder.Build(ctx, opts)
	if err != nil {
		return domain.BuildResult{}, zerr.Wrap(err, "build failed")
	}
	return result, nil
}

// Watch builds once, then rebuilds whenever the client source tree
// changes. Events are debounced so one save triggers one rebuild. Rebuild
// failures are logged and watching continues; only a failed watcher start
// is an error. Returns nil when ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts domain.BuildOptions) error {
	if _, err := a.Build(ctx, opts); err != nil {
		a.logger.Error(err)
	}

	if err := a.watcher.Start(ctx, opts.SrcDir); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch client sources"), "dir", opts.SrcDir)
	}
	defer a.watcher.Stop() //nolint:errcheck // Best effort stop on the way out

	rebuild := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.logger.Debug(fmt.Sprintf("%d change(s), rebuilding", len(paths)))
		select {
		case rebuild <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-rebuild:
			result, err := a.Build(ctx, opts)
			if err != nil {
				a.logger.Error(err)
				continue
			}
			a.logger.Info(fmt.Sprintf("rebuilt: %d emitted, %d skipped in %s",
				result.Emitted, result.Skipped, result.Timings.Total.Round(timeRounding)))
		}
	}
}

// Clean removes every emitted module from outDir along with the resolution
// cache and the recorded build info, forcing the next build to start cold.
// Returns the number of files removed; already-absent state files are fine.
func (a *App) Clean(outDir string) (int, error) {
	entries, err := a.output.Entries(outDir)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to scan output directory")
	}

	removed := 0
	for _, name := range entries {
		if !strings.HasSuffix(name, "."+domain.OutputExt) {
			continue
		}
		if err := a.output.Remove(filepath.Join(outDir, name)); err != nil {
			return removed, zerr.Wrap(err, "failed to remove emitted module")
		}
		removed++
	}

	for _, state := range []string{a.cfg.CacheFile, a.cfg.InfoFile} {
		err := a.output.Remove(state)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, fs.ErrNotExist):
		default:
			return removed, zerr.Wrap(err, "failed to remove state file")
		}
	}
	return removed, nil
}

// Verify diffs outDir against the build info recorded by the last build
// and returns what drifted. It detects hand-edited outputs, deleted
// modules, foreign files, and the stale handler modules a presence-only
// build skip cannot see. A dirty report comes back with ErrOutputDrift.
func (a *App) Verify(outDir string) (domain.DriftReport, error) {
	info, err := a.infoStore.Load()
	if err != nil {
		return domain.DriftReport{}, zerr.Wrap(err, "failed to load build info")
	}
	if info == nil {
		return domain.DriftReport{}, zerr.New("no recorded build to verify against")
	}

	var report domain.DriftReport
	for name, recorded := range info.Modules {
		digest, _, err := a.hasher.DigestFile(filepath.Join(outDir, name))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			report.Missing = append(report.Missing, name)
		case err != nil:
			return domain.DriftReport{}, zerr.With(zerr.Wrap(err, "failed to digest module"), "module", name)
		case digest != recorded.Digest:
			report.Drifted = append(report.Drifted, name)
		}
	}

	entries, err := a.output.Entries(outDir)
	if err != nil {
		return domain.DriftReport{}, zerr.Wrap(err, "failed to scan output directory")
	}
	for _, name := range entries {
		if !strings.HasSuffix(name, "."+domain.OutputExt) {
			continue
		}
		if _, ok := info.Modules[name]; !ok {
			report.Foreign = append(report.Foreign, name)
		}
	}

	slices.Sort(report.Drifted)
	slices.Sort(report.Missing)
	slices.Sort(report.Foreign)
	if !report.Clean() {
		return report, zerr.With(zerr.Wrap(domain.ErrOutputDrift, "verification failed"), "dir", outDir)
	}
	return report, nil
}
