package esbuild_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clientfn.dev/clientfn/internal/adapters/esbuild"
	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

// fakeBinary writes an executable shell script and returns its path.
func fakeBinary(t *testing.T, name, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(path, []byte(script), 0o700))
	return path
}

func TestNew_MissingBinary(t *testing.T) {
	_, err := esbuild.New("definitely-not-a-real-transpiler-binary")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTranspilerUnavailable))
}

func TestTranspiler_Transpile(t *testing.T) {
	// The fake binary records its arguments and echoes stdin back.
	path := fakeBinary(t, "esbuild", "#!/bin/sh\necho \"$@\" > \"$(dirname \"$0\")/args.txt\"\ncat\n")

	transpiler, err := esbuild.New(path)
	require.NoError(t, err)

	out, err := transpiler.Transpile(context.Background(), []byte("export default x;"), ports.TranspileOptions{
		Loader: "ts",
		Format: "esm",
		Target: "es2020",
		Minify: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "export default x;", string(out))

	args, err := os.ReadFile(filepath.Join(filepath.Dir(path), "args.txt"))
	require.NoError(t, err)
	assert.Equal(t, "--loader=ts --format=esm --target=es2020 --minify\n", string(args))
}

func TestTranspiler_Transpile_NoMinify(t *testing.T) {
	path := fakeBinary(t, "esbuild", "#!/bin/sh\necho \"$@\" > \"$(dirname \"$0\")/args.txt\"\ncat\n")

	transpiler, err := esbuild.New(path)
	require.NoError(t, err)

	_, err = transpiler.Transpile(context.Background(), []byte("x"), ports.TranspileOptions{
		Loader: "tsx",
		Format: "esm",
		Target: "es2022",
	})
	require.NoError(t, err)

	args, err := os.ReadFile(filepath.Join(filepath.Dir(path), "args.txt"))
	require.NoError(t, err)
	assert.Equal(t, "--loader=tsx --format=esm --target=es2022\n", string(args))
}

func TestTranspiler_Transpile_Failure(t *testing.T) {
	path := fakeBinary(t, "esbuild", "#!/bin/sh\necho 'Unexpected \"}\"' >&2\nexit 1\n")

	transpiler, err := esbuild.New(path)
	require.NoError(t, err)

	_, err = transpiler.Transpile(context.Background(), []byte("}"), ports.TranspileOptions{Loader: "ts"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "transpile failed")
}

func TestTranspiler_Transpile_Canceled(t *testing.T) {
	path := fakeBinary(t, "esbuild", "#!/bin/sh\nsleep 10\n")

	transpiler, err := esbuild.New(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = transpiler.Transpile(ctx, []byte("x"), ports.TranspileOptions{Loader: "ts"})
	require.Error(t, err)
}

func TestPassThrough_Transpile(t *testing.T) {
	out, err := esbuild.NewPassThrough().Transpile(context.Background(), []byte("const a = 1;"), ports.TranspileOptions{
		Loader: "ts",
		Minify: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "const a = 1;", string(out))
}
