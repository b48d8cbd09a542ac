// Package builder orchestrates a build run: it scans client sources, emits
// the bootstrap, handler modules and client files concurrently, prunes
// outputs no group claimed, and records digests of what the run left behind.
package builder

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"clientfn.dev/clientfn/internal/client"
	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
	"clientfn.dev/clientfn/internal/engine/compiler"
	"clientfn.dev/clientfn/internal/registry"
)

// Builder runs builds against one registry and output directory layout.
type Builder struct {
	registry  *registry.Registry
	resolver  ports.Resolver
	compiler  *compiler.Compiler
	scanner   ports.Scanner
	output    ports.OutputFS
	hasher    ports.Hasher
	infoStore ports.BuildInfoStore
	telemetry ports.Telemetry
	logger    ports.Logger
	version   string
}

// New wires a builder from its collaborators. version feeds the bootstrap
// marker and the recorded build info.
func New(
	reg *registry.Registry,
	resolver ports.Resolver,
	comp *compiler.Compiler,
	scanner ports.Scanner,
	output ports.OutputFS,
	hasher ports.Hasher,
	infoStore ports.BuildInfoStore,
	telemetry ports.Telemetry,
	logger ports.Logger,
	version string,
) *Builder {
	return &Builder{
		registry:  reg,
		resolver:  resolver,
		compiler:  comp,
		scanner:   scanner,
		output:    output,
		hasher:    hasher,
		infoStore: infoStore,
		telemetry: telemetry,
		logger:    logger,
		version:   version,
	}
}

// emitLog collects what the concurrent build groups produced or kept.
type emitLog struct {
	mu       sync.Mutex
	bases    []string
	files    []string
	emitted  int
	skipped  int
	degraded int
}

func (l *emitLog) emit(mod domain.Module) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bases = append(l.bases, mod.ID)
	l.files = append(l.files, mod.FileName)
	l.emitted++
	if mod.Degraded {
		l.degraded++
	}
}

func (l *emitLog) keep(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bases = append(l.bases, id)
	l.files = append(l.files, id+"."+domain.OutputExt)
	l.skipped++
}

// Build runs one build. The bootstrap, handler and client file groups run
// concurrently; within the handler group, handlers emit in registration
// order. Write and cleanup failures fail the build; transpile failures
// degrade per module and are only counted.
func (b *Builder) Build(ctx context.Context, opts domain.BuildOptions) (result domain.BuildResult, err error) {
	start := time.Now()

	ctx, vtx := b.telemetry.Record(ctx, "build")
	defer func() { vtx.Complete(err) }()

	if derr := b.output.EnsureDir(opts.OutDir); derr != nil {
		// Swallowed: a truly unusable directory fails the writes below.
		b.logger.Debug("output dir create failed: " + derr.Error())
	}

	scanStart := time.Now()
	sources, err := b.scanner.Scan(opts.SrcDir)
	if err != nil {
		return domain.BuildResult{}, zerr.With(zerr.Wrap(err, "failed to scan client sources"), "dir", opts.SrcDir)
	}
	result.Timings.Scan = time.Since(scanStart)

	log := &emitLog{}
	buildStart := time.Now()
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return b.emitBootstrap(gctx, opts, log) })
	eg.Go(func() error { return b.emitHandlers(gctx, opts, log) })
	eg.Go(func() error { return b.emitClientFiles(gctx, opts, sources, log) })
	if err = eg.Wait(); err != nil {
		return domain.BuildResult{}, err
	}
	b.resolver.Flush()
	result.Timings.Build = time.Since(buildStart)

	if opts.Cleanup {
		cleanupStart := time.Now()
		result.Pruned, err = b.cleanup(ctx, opts, log.bases)
		if err != nil {
			return domain.BuildResult{}, err
		}
		result.Timings.Cleanup = time.Since(cleanupStart)
	}

	b.recordBuildInfo(opts.OutDir, log.files)

	result.Files = slices.Clone(log.bases)
	slices.Sort(result.Files)
	result.Emitted = log.emitted
	result.Skipped = log.skipped
	result.Degraded = log.degraded
	result.Timings.Total = time.Since(start)
	return result, nil
}

// emitBootstrap writes the browser bootstrap unless the existing output
// already starts with the current version marker.
func (b *Builder) emitBootstrap(ctx context.Context, opts domain.BuildOptions, log *emitLog) (err error) {
	_, vtx := b.telemetry.Record(ctx, domain.BootstrapBase+"."+domain.OutputExt)
	defer func() { vtx.Complete(err) }()

	marker := client.Marker(b.version)
	outPath := filepath.Join(opts.OutDir, domain.BootstrapBase+"."+domain.OutputExt)
	if line, ok := b.output.FirstLine(outPath); ok && line == marker {
		vtx.Cached()
		log.keep(domain.BootstrapBase)
		return nil
	}

	mod, err := b.compiler.CompileBootstrap(ctx, client.Source(), marker, opts)
	if err != nil {
		return err
	}
	if werr := b.output.WriteFile(outPath, mod.Code); werr != nil {
		return zerr.With(zerr.Wrap(werr, "failed to write bootstrap"), "path", outPath)
	}
	log.emit(mod)
	return nil
}

// emitHandlers compiles and writes the registered handlers in registration
// order. A handler whose module file already exists is current by
// construction, the id encodes the source.
func (b *Builder) emitHandlers(ctx context.Context, opts domain.BuildOptions, log *emitLog) (err error) {
	gctx, vtx := b.telemetry.Record(ctx, "handlers")
	defer func() { vtx.Complete(err) }()

	for h := range b.registry.Handlers() {
		if err = gctx.Err(); err != nil {
			return err
		}

		outPath := filepath.Join(opts.OutDir, h.FileName())
		mctx, mv := b.telemetry.Record(gctx, h.FileName())
		if b.output.Exists(outPath) {
			mv.Cached()
			mv.Complete(nil)
			log.keep(h.ID)
			b.logger.Debug("handler " + h.Name + " up to date")
			continue
		}

		mod, cerr := b.compiler.Compile(mctx, h, opts)
		if cerr != nil {
			mv.Complete(cerr)
			return cerr
		}
		if mod.Degraded {
			io.WriteString(mv.Stderr(), "emitted untranspiled\n") //nolint:errcheck // telemetry stream
		}
		if werr := b.output.WriteFile(outPath, mod.Code); werr != nil {
			werr = zerr.With(zerr.Wrap(werr, "failed to write handler module"), "handler", h.Name)
			werr = zerr.With(werr, "path", outPath)
			mv.Complete(werr)
			return werr
		}
		log.emit(mod)
		mv.Complete(nil)
	}
	return nil
}

// emitClientFiles transpiles the scanned sources whose outputs are older
// than the source file.
func (b *Builder) emitClientFiles(ctx context.Context, opts domain.BuildOptions, sources []domain.SourceFile, log *emitLog) (err error) {
	gctx, vtx := b.telemetry.Record(ctx, "client files")
	defer func() { vtx.Complete(err) }()

	for _, f := range sources {
		if err = gctx.Err(); err != nil {
			return err
		}

		outPath := filepath.Join(opts.OutDir, f.Base+"."+domain.OutputExt)
		mctx, mv := b.telemetry.Record(gctx, f.Base+"."+domain.OutputExt)
		if mtime, ok := b.output.ModTime(outPath); ok && !mtime.Before(f.ModTime) {
			mv.Cached()
			mv.Complete(nil)
			log.keep(f.Base)
			b.logger.Debug("client file " + f.Path + " up to date")
			continue
		}

		src, rerr := b.scanner.Read(f.Path)
		if rerr != nil {
			rerr = zerr.With(zerr.Wrap(rerr, "failed to read client source"), "path", f.Path)
			mv.Complete(rerr)
			return rerr
		}
		mod, cerr := b.compiler.CompileFile(mctx, f, src, opts)
		if cerr != nil {
			mv.Complete(cerr)
			return cerr
		}
		if mod.Degraded {
			io.WriteString(mv.Stderr(), "emitted untranspiled\n") //nolint:errcheck // telemetry stream
		}
		if werr := b.output.WriteFile(outPath, mod.Code); werr != nil {
			werr = zerr.With(zerr.Wrap(werr, "failed to write client module"), "path", outPath)
			mv.Complete(werr)
			return werr
		}
		log.emit(mod)
		mv.Complete(nil)
	}
	return nil
}

// cleanup removes every output file whose base name, the portion before the
// first dot, was not produced or kept this run. Removal failures fail the
// build.
func (b *Builder) cleanup(ctx context.Context, opts domain.BuildOptions, bases []string) (pruned int, err error) {
	_, vtx := b.telemetry.Record(ctx, "cleanup")
	defer func() { vtx.Complete(err) }()

	entries, err := b.output.Entries(opts.OutDir)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to list output directory"), "dir", opts.OutDir)
	}

	live := make(map[string]struct{}, len(bases))
	for _, base := range bases {
		live[firstDotBase(base)] = struct{}{}
	}

	for _, name := range entries {
		if _, ok := live[firstDotBase(name)]; ok {
			continue
		}
		if rerr := b.output.Remove(filepath.Join(opts.OutDir, name)); rerr != nil {
			return pruned, zerr.With(zerr.Wrap(rerr, "failed to prune stale output"), "file", name)
		}
		pruned++
		b.logger.Debug("pruned stale output " + name)
	}
	return pruned, nil
}

// recordBuildInfo digests what the run emitted or kept so verification can
// detect drift later. Failures only cost the record, never the build.
func (b *Builder) recordBuildInfo(outDir string, files []string) {
	info := &domain.BuildInfo{
		Version: b.version,
		Modules: make(map[string]domain.ModuleInfo, len(files)),
	}
	now := time.Now()
	for _, name := range files {
		digest, size, err := b.hasher.DigestFile(filepath.Join(outDir, name))
		if err != nil {
			b.logger.Debug(fmt.Sprintf("digest failed for %s: %v", name, err))
			continue
		}
		info.Modules[name] = domain.ModuleInfo{Digest: digest, Size: size, EmittedAt: now}
	}
	if err := b.infoStore.Save(info); err != nil {
		b.logger.Debug("build info save failed: " + err.Error())
	}
}

// firstDotBase returns the portion of a file name before the first dot.
func firstDotBase(name string) string {
	base, _, _ := strings.Cut(name, ".")
	return base
}
