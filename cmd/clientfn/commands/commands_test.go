package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientfn.dev/clientfn/cmd/clientfn/commands"
	"clientfn.dev/clientfn/internal/build"
	"clientfn.dev/clientfn/internal/core/domain"
)

// mockApp scripts the Application interface per test.
type mockApp struct {
	cfg        domain.Config
	buildFunc  func(ctx context.Context, opts domain.BuildOptions) (domain.BuildResult, error)
	watchFunc  func(ctx context.Context, opts domain.BuildOptions) error
	cleanFunc  func(outDir string) (int, error)
	verifyFunc func(outDir string) (domain.DriftReport, error)
}

func (m *mockApp) Config() domain.Config {
	if m.cfg.Build.OutDir == "" {
		return domain.DefaultConfig()
	}
	return m.cfg
}

func (m *mockApp) Build(ctx context.Context, opts domain.BuildOptions) (domain.BuildResult, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return domain.BuildResult{}, nil
}

func (m *mockApp) Watch(ctx context.Context, opts domain.BuildOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(outDir string) (int, error) {
	if m.cleanFunc != nil {
		return m.cleanFunc(outDir)
	}
	return 0, nil
}

func (m *mockApp) Verify(outDir string) (domain.DriftReport, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(outDir)
	}
	return domain.DriftReport{}, nil
}

func execute(t *testing.T, mock *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(mock)
	out := new(bytes.Buffer)
	cli.SetOutput(out, out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestBuild_FlagOverrides(t *testing.T) {
	var captured domain.BuildOptions
	mock := &mockApp{
		buildFunc: func(_ context.Context, opts domain.BuildOptions) (domain.BuildResult, error) {
			captured = opts
			return domain.BuildResult{Files: []string{"a", "b"}, Emitted: 1, Skipped: 1}, nil
		},
	}

	out, err := execute(t, mock, "build", "--src", "web", "--minify=false")
	require.NoError(t, err)

	// Flags the user set override the config; untouched ones keep the
	// configured defaults.
	assert.Equal(t, "web", captured.SrcDir)
	assert.False(t, captured.Minify)
	assert.Equal(t, "dist", captured.OutDir)
	assert.True(t, captured.Cleanup)
	assert.Contains(t, out, "2 modules: 1 emitted, 1 skipped")
}

func TestBuild_PropagatesError(t *testing.T) {
	boom := errors.New("broken build")
	mock := &mockApp{
		buildFunc: func(context.Context, domain.BuildOptions) (domain.BuildResult, error) {
			return domain.BuildResult{}, boom
		},
	}

	_, err := execute(t, mock, "build")
	assert.ErrorIs(t, err, boom)
}

func TestWatch_UsesBuildFlags(t *testing.T) {
	var captured domain.BuildOptions
	mock := &mockApp{
		watchFunc: func(_ context.Context, opts domain.BuildOptions) error {
			captured = opts
			return nil
		},
	}

	_, err := execute(t, mock, "watch", "--out", "public")
	require.NoError(t, err)
	assert.Equal(t, "public", captured.OutDir)
}

func TestClean_DefaultsToConfiguredOut(t *testing.T) {
	var captured string
	mock := &mockApp{
		cleanFunc: func(outDir string) (int, error) {
			captured = outDir
			return 4, nil
		},
	}

	out, err := execute(t, mock, "clean")
	require.NoError(t, err)
	assert.Equal(t, "dist", captured)
	assert.Contains(t, out, "removed 4 file(s)")
}

func TestVerify_CleanReport(t *testing.T) {
	out, err := execute(t, &mockApp{}, "verify")
	require.NoError(t, err)
	assert.Contains(t, out, "output matches the last recorded build")
}

func TestVerify_DriftFailsWithDetail(t *testing.T) {
	mock := &mockApp{
		verifyFunc: func(string) (domain.DriftReport, error) {
			return domain.DriftReport{
				Drifted: []string{"submit_1a.js"},
				Foreign: []string{"stray.js"},
			}, domain.ErrOutputDrift
		},
	}

	out, err := execute(t, mock, "verify")
	assert.ErrorIs(t, err, domain.ErrOutputDrift)
	assert.Contains(t, out, "drifted: submit_1a.js")
	assert.Contains(t, out, "foreign: stray.js")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
}

func TestVerboseHookFires(t *testing.T) {
	fired := false
	cli := commands.New(&mockApp{}, commands.WithVerboseHook(func() { fired = true }))
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"version", "-v"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, fired)
}
