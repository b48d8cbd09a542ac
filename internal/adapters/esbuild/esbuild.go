// Package esbuild shells out to the esbuild binary for transpilation.
package esbuild

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"

	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

var (
	_ ports.Transpiler = (*Transpiler)(nil)
	_ ports.Transpiler = (*PassThrough)(nil)
)

// Transpiler implements ports.Transpiler by invoking the esbuild binary.
type Transpiler struct {
	binary string
}

// New resolves binary once and returns a transpiler invoking it. Returns
// domain.ErrTranspilerUnavailable when the binary cannot be found.
func New(binary string) (*Transpiler, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTranspilerUnavailable, "failed to resolve transpiler"), "binary", binary)
	}
	return &Transpiler{binary: path}, nil
}

// Transpile feeds src to the binary on stdin and returns the transpiled
// output. Source maps are never generated.
func (t *Transpiler) Transpile(ctx context.Context, src []byte, opts ports.TranspileOptions) ([]byte, error) {
	args := []string{"--loader=" + opts.Loader}
	if opts.Format != "" {
		args = append(args, "--format="+opts.Format)
	}
	if opts.Target != "" {
		args = append(args, "--target="+opts.Target)
	}
	if opts.Minify {
		args = append(args, "--minify")
	}

	cmd := exec.CommandContext(ctx, t.binary, args...) //nolint:gosec // Binary is resolved from configuration
	cmd.Stdin = bytes.NewReader(src)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitCode int
		if exitErr, ok := err.(*exec.ExitError); ok { //nolint:errorlint // Run returns the ExitError directly
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}

		werr := zerr.With(zerr.Wrap(err, "transpile failed"), "exit_code", exitCode)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			werr = zerr.With(werr, "stderr", msg)
		}
		return nil, werr
	}

	return stdout.Bytes(), nil
}

// PassThrough returns source unchanged. It stands in when the configured
// transpiler binary cannot be resolved, keeping builds running with
// untranspiled output.
type PassThrough struct{}

// NewPassThrough creates a new PassThrough.
func NewPassThrough() *PassThrough {
	return &PassThrough{}
}

// Transpile returns src as-is.
func (*PassThrough) Transpile(_ context.Context, src []byte, _ ports.TranspileOptions) ([]byte, error) {
	return src, nil
}
