// Package compiler produces the JavaScript modules the build emits: handler
// modules synthesized from the registry, transpiled client files and the
// browser bootstrap.
package compiler

import (
	"context"
	"fmt"
	"strings"

	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
	"clientfn.dev/clientfn/internal/registry"
)

// Compiler renders module source and runs it through the transpiler. A
// transpiler failure never fails a compile; the untranspiled source is
// emitted instead and the module is marked degraded. Only context
// cancellation propagates as an error.
type Compiler struct {
	registry   *registry.Registry
	transpiler ports.Transpiler
	logger     ports.Logger
}

// New returns a compiler drawing import lines from reg.
func New(reg *registry.Registry, transpiler ports.Transpiler, logger ports.Logger) *Compiler {
	return &Compiler{
		registry:   reg,
		transpiler: transpiler,
		logger:     logger,
	}
}

// Compile synthesizes and transpiles the module for a registered handler:
// the import lines of the handler's file partition (the handler itself
// excluded), then the handler source as the default export.
func (c *Compiler) Compile(ctx context.Context, h domain.Handler, opts domain.BuildOptions) (domain.Module, error) {
	file := h.File.String()

	var b strings.Builder
	for name, id := range c.registry.ImportsFor(file) {
		if name == h.Name {
			continue
		}
		b.WriteString(domain.ImportLine(name, id, domain.OutputExt))
		b.WriteByte('\n')
	}
	b.WriteString("export default ")
	b.WriteString(string(h.Source))
	b.WriteString(";\n")

	code, degraded, err := c.lower(ctx, "handler "+h.Name, loaderFor(file), []byte(b.String()), opts)
	if err != nil {
		return domain.Module{}, err
	}
	return domain.Module{
		ID:       h.ID,
		FileName: h.FileName(),
		Code:     code,
		Degraded: degraded,
	}, nil
}

// CompileFile transpiles a scanned client source file into its output
// module, named after the file's base name.
func (c *Compiler) CompileFile(ctx context.Context, f domain.SourceFile, src []byte, opts domain.BuildOptions) (domain.Module, error) {
	code, degraded, err := c.lower(ctx, f.Path, loaderFor(f.Path), src, opts)
	if err != nil {
		return domain.Module{}, err
	}
	return domain.Module{
		ID:       f.Base,
		FileName: f.Base + "." + domain.OutputExt,
		Code:     code,
		Degraded: degraded,
	}, nil
}

// CompileBootstrap transpiles the embedded bootstrap source and prepends the
// version marker line. The marker goes in after transpilation so minification
// cannot strip it; it must stay the first line of the emitted file.
func (c *Compiler) CompileBootstrap(ctx context.Context, src []byte, marker string, opts domain.BuildOptions) (domain.Module, error) {
	code, degraded, err := c.lower(ctx, domain.BootstrapBase, "ts", src, opts)
	if err != nil {
		return domain.Module{}, err
	}

	marked := make([]byte, 0, len(marker)+1+len(code))
	marked = append(marked, marker...)
	marked = append(marked, '\n')
	marked = append(marked, code...)

	return domain.Module{
		ID:       domain.BootstrapBase,
		FileName: domain.BootstrapBase + "." + domain.OutputExt,
		Code:     marked,
		Degraded: degraded,
	}, nil
}

func (c *Compiler) lower(ctx context.Context, label, loader string, src []byte, opts domain.BuildOptions) ([]byte, bool, error) {
	out, err := c.transpiler.Transpile(ctx, src, ports.TranspileOptions{
		Loader: loader,
		Format: "esm",
		Target: opts.Target,
		Minify: opts.Minify,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		c.logger.Warn(fmt.Sprintf("transpile failed for %s, emitting source as-is: %v", label, err))
		return src, true, nil
	}
	return out, false, nil
}

// loaderFor picks the transpiler loader from the source file extension.
// Anything that is not .tsx is fed through the plain TypeScript loader,
// which also accepts JavaScript.
func loaderFor(path string) string {
	if strings.HasSuffix(path, ".tsx") {
		return "tsx"
	}
	return "ts"
}
