package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"

	"clientfn.dev/clientfn/internal/adapters/config"
	"clientfn.dev/clientfn/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(error)  {}

func TestLoader_Load_Success(t *testing.T) {
	content := `
src: app/client
out: public/js
minify: false
cleanup: false
verbose: true
transpiler: /usr/local/bin/esbuild
target: es2022
cache_file: .state/cache.json
info_file: .state/build.json
`
	configPath := filepath.Join(t.TempDir(), "clientfn.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := config.NewLoader(nopLogger{}).Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "app/client", cfg.Build.SrcDir)
	assert.Equal(t, "public/js", cfg.Build.OutDir)
	assert.False(t, cfg.Build.Minify)
	assert.False(t, cfg.Build.Cleanup)
	assert.True(t, cfg.Build.Verbose)
	assert.Equal(t, "/usr/local/bin/esbuild", cfg.Transpiler)
	assert.Equal(t, "es2022", cfg.Build.Target)
	assert.Equal(t, ".state/cache.json", cfg.CacheFile)
	assert.Equal(t, ".state/build.json", cfg.InfoFile)
}

func TestLoader_Load_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.NewLoader(nopLogger{}).Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoader_Load_PartialFileKeepsDefaults(t *testing.T) {
	content := `
src: web/handlers
`
	configPath := filepath.Join(t.TempDir(), "clientfn.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	cfg, err := config.NewLoader(nopLogger{}).Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "web/handlers", cfg.Build.SrcDir)
	assert.Equal(t, "dist", cfg.Build.OutDir)
	assert.True(t, cfg.Build.Minify, "omitted minify keeps the enabled default")
	assert.True(t, cfg.Build.Cleanup)
	assert.Equal(t, "esbuild", cfg.Transpiler)
	assert.Equal(t, "es2020", cfg.Build.Target)
}

func TestLoader_Load_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte("src: widgets\n"), 0o600))
	t.Chdir(dir)

	cfg, err := config.NewLoader(nopLogger{}).Load("")
	require.NoError(t, err)

	assert.Equal(t, "widgets", cfg.Build.SrcDir)
}

func TestLoader_Load_SameSrcAndOut(t *testing.T) {
	content := `
src: client
out: client
`
	configPath := filepath.Join(t.TempDir(), "clientfn.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	_, err := config.NewLoader(nopLogger{}).Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be distinct")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	meta := zErr.Metadata()
	assert.Equal(t, "client", meta["src"])
	assert.Equal(t, "client", meta["out"])
	assert.Equal(t, configPath, meta["config_file"])
}

func TestLoader_Load_Errors(t *testing.T) {
	t.Run("Invalid YAML", func(t *testing.T) {
		content := `
src: [unclosed
`
		configPath := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

		_, err := config.NewLoader(nopLogger{}).Load(configPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("Unreadable File", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "dir.yaml")
		require.NoError(t, os.MkdirAll(dir, 0o750))

		_, err := config.NewLoader(nopLogger{}).Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}
