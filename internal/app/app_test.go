package app_test

import (
	"context"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientfn.dev/clientfn/internal/adapters/cas"
	"clientfn.dev/clientfn/internal/adapters/esbuild"
	"clientfn.dev/clientfn/internal/adapters/fs"
	"clientfn.dev/clientfn/internal/adapters/telemetry"
	"clientfn.dev/clientfn/internal/app"
	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
	"clientfn.dev/clientfn/internal/engine/builder"
	"clientfn.dev/clientfn/internal/engine/compiler"
	"clientfn.dev/clientfn/internal/registry"
)

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(error)  {}

// stubResolver derives predictable ids without a cache.
type stubResolver struct{}

func (stubResolver) Resolve(name string, _ domain.Func, _ string) string { return name + "_0" }
func (stubResolver) Flush()                                              {}

// fakeWatcher feeds scripted events and closes down with the watch context.
type fakeWatcher struct {
	events chan ports.WatchEvent
	ctx    context.Context
}

func (w *fakeWatcher) Start(ctx context.Context, _ string) error { w.ctx = ctx; return nil }
func (w *fakeWatcher) Stop() error                               { return nil }

func (w *fakeWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for {
			select {
			case <-w.ctx.Done():
				return
			case ev := <-w.events:
				if !yield(ev) {
					return
				}
			}
		}
	}
}

type harness struct {
	app     *app.App
	reg     *registry.Registry
	watcher *fakeWatcher
	cfg     domain.Config
	opts    domain.BuildOptions
}

// newHarness assembles a real pipeline over a temp directory, with a
// pass-through transpiler so no external binary is needed.
func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	cfg := domain.DefaultConfig()
	cfg.Build.SrcDir = filepath.Join(dir, "client")
	cfg.Build.OutDir = filepath.Join(dir, "dist")
	cfg.CacheFile = filepath.Join(dir, ".clientfn", "cache.json")
	cfg.InfoFile = filepath.Join(dir, ".clientfn", "build.json")

	reg := registry.New(stubResolver{})
	comp := compiler.New(reg, esbuild.NewPassThrough(), nopLogger{})
	infoStore := cas.NewBuildInfoStore(cfg.InfoFile)
	bld := builder.New(
		reg, stubResolver{}, comp,
		fs.NewScanner(), fs.NewOutputFS(), fs.NewHasher(), infoStore,
		telemetry.NewNoop(), nopLogger{}, "testv",
	)
	w := &fakeWatcher{events: make(chan ports.WatchEvent)}

	return &harness{
		app:     app.New(cfg, bld, w, fs.NewOutputFS(), fs.NewHasher(), infoStore, nopLogger{}),
		reg:     reg,
		watcher: w,
		cfg:     cfg,
		opts:    cfg.Build,
	}
}

func (h *harness) register(t *testing.T, name string, src domain.Func) domain.Handler {
	t.Helper()
	handler, err := h.reg.Register(name, src, "")
	require.NoError(t, err)
	return handler
}

func TestBuildThenVerifyClean(t *testing.T) {
	h := newHarness(t)
	h.register(t, "submit", "() => fetch('/submit')")

	result, err := h.app.Build(context.Background(), h.opts)
	require.NoError(t, err)
	assert.Contains(t, result.Files, "submit_0")
	assert.Contains(t, result.Files, domain.BootstrapBase)

	report, err := h.app.Verify(h.opts.OutDir)
	require.NoError(t, err)
	assert.True(t, report.Clean())
}

func TestVerifyReportsDrift(t *testing.T) {
	h := newHarness(t)
	h.register(t, "submit", "() => fetch('/submit')")
	h.register(t, "cancel", "() => history.back()")

	_, err := h.app.Build(context.Background(), h.opts)
	require.NoError(t, err)

	// Hand-edit one module, delete another, plant a foreign one.
	edited := filepath.Join(h.opts.OutDir, "submit_0.js")
	require.NoError(t, os.WriteFile(edited, []byte("tampered"), 0o644))
	require.NoError(t, os.Remove(filepath.Join(h.opts.OutDir, "cancel_0.js")))
	foreign := filepath.Join(h.opts.OutDir, "stray.js")
	require.NoError(t, os.WriteFile(foreign, []byte("// stray"), 0o644))

	report, err := h.app.Verify(h.opts.OutDir)
	require.ErrorIs(t, err, domain.ErrOutputDrift)
	assert.Equal(t, []string{"submit_0.js"}, report.Drifted)
	assert.Equal(t, []string{"cancel_0.js"}, report.Missing)
	assert.Equal(t, []string{"stray.js"}, report.Foreign)
}

func TestCleanRemovesOutputsAndState(t *testing.T) {
	h := newHarness(t)
	h.register(t, "submit", "() => fetch('/submit')")

	_, err := h.app.Build(context.Background(), h.opts)
	require.NoError(t, err)

	removed, err := h.app.Clean(h.opts.OutDir)
	require.NoError(t, err)
	// Handler module, bootstrap, and the build info file. The cache file
	// was never written because the stub resolver does not persist.
	assert.Equal(t, 3, removed)

	entries, err := os.ReadDir(h.opts.OutDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoFileExists(t, h.cfg.InfoFile)

	// Cleaning an already-clean tree removes nothing and does not error.
	removed, err = h.app.Clean(h.opts.OutDir)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCleanMissingOutputDir(t *testing.T) {
	h := newHarness(t)

	removed, err := h.app.Clean(filepath.Join(t.TempDir(), "never-built"))
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestWatchRebuildsAfterChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		h := newHarness(t)
		h.register(t, "submit", "() => fetch('/submit')")

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- h.app.Watch(ctx, h.opts) }()

		// Initial build has run once Watch is parked on its event loop.
		synctest.Wait()
		module := filepath.Join(h.opts.OutDir, "submit_0.js")
		assert.FileExists(t, module)

		// Losing the output and signaling a change must bring it back
		// after the debounce window.
		require.NoError(t, os.Remove(module))
		h.watcher.events <- ports.WatchEvent{Path: "client/app.ts", Operation: ports.OpWrite}
		time.Sleep(2 * time.Second)
		synctest.Wait()
		assert.FileExists(t, module)

		cancel()
		require.NoError(t, <-done)
	})
}
