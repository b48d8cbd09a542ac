// Package clientfn turns server-registered client handler functions into
// individually compiled, content-addressed browser modules. Server code
// registers handlers at startup, a build pass emits one module per handler
// plus a shared bootstrap, and generated markup invokes them through the
// bootstrap's lazy dispatch proxy as handlers.<id>(this, event).
//
// The package-level functions operate on one process-wide runtime,
// initialized on first use; Reset discards it for test isolation. Servers
// that need more control can wire the internal components through the CLI
// configuration instead.
package clientfn

import (
	"context"
	"sync"

	"clientfn.dev/clientfn/internal/adapters/cas"
	"clientfn.dev/clientfn/internal/adapters/esbuild"
	"clientfn.dev/clientfn/internal/adapters/fs"
	"clientfn.dev/clientfn/internal/adapters/logger"
	"clientfn.dev/clientfn/internal/adapters/telemetry"
	"clientfn.dev/clientfn/internal/build"
	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
	"clientfn.dev/clientfn/internal/dispatch"
	"clientfn.dev/clientfn/internal/engine/builder"
	"clientfn.dev/clientfn/internal/engine/compiler"
	"clientfn.dev/clientfn/internal/engine/naming"
	"clientfn.dev/clientfn/internal/registry"
)

// Core types, re-exported so servers only import this package.
type (
	// Func is a handler's source text, a JavaScript or TypeScript
	// function expression.
	Func = domain.Func
	// Handler is a registered handler with its resolved id.
	Handler = domain.Handler
	// BuildOptions configures a build pass.
	BuildOptions = domain.BuildOptions
	// BuildResult summarizes a build pass.
	BuildResult = domain.BuildResult
	// Config is the runtime configuration.
	Config = domain.Config
	// ModuleLoader loads emitted handler modules for server-side dispatch.
	ModuleLoader = ports.ModuleLoader
	// LoadedModule is a loaded handler module's callable.
	LoadedModule = ports.LoadedModule
	// Dispatcher forwards calls to lazily loaded handler modules.
	Dispatcher = dispatch.Dispatcher
)

// runtime is the process-wide state behind the package-level functions.
type runtime struct {
	cfg      domain.Config
	log      *logger.Logger
	resolver *naming.Resolver
	registry *registry.Registry
}

var (
	mu sync.Mutex
	rt *runtime
)

func newRuntime(cfg domain.Config) *runtime {
	log := logger.New()
	resolver := naming.NewResolver(cas.NewCacheStore(cfg.CacheFile), log)
	return &runtime{
		cfg:      cfg,
		log:      log,
		resolver: resolver,
		registry: registry.New(resolver),
	}
}

// current returns the runtime, constructing it with defaults on first use.
// Callers must hold mu.
func current() *runtime {
	if rt == nil {
		rt = newRuntime(domain.DefaultConfig())
	}
	return rt
}

// Configure replaces the runtime configuration, discarding all registered
// handlers and pointing the resolution cache at the configured path. Call
// it before any registration.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if rt != nil {
		rt.resolver.Close()
	}
	rt = newRuntime(cfg)
}

// Reset discards the runtime and the installed dispatcher. Tests only.
func Reset() {
	mu.Lock()
	if rt != nil {
		rt.resolver.Close()
		rt = nil
	}
	mu.Unlock()
	dispatch.Reset()
}

// RegisterOption configures a registration.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	file string
}

// WithFile attaches the locator of the file declaring the handler. It
// partitions the import registry, so handlers sharing a locator can import
// each other, and it keys the resolution cache on the file's modification
// time. Handlers registered without one share a global partition and are
// resolved fresh on every registration.
func WithFile(locator string) RegisterOption {
	return func(c *registerConfig) { c.file = locator }
}

// Register records a handler function under name and resolves its
// content-addressed id. The returned Handler's Invocation method renders
// the markup attribute value, handlers.<id>(this, event).
func Register(name string, fn Func, opts ...RegisterOption) (Handler, error) {
	var rc registerConfig
	for _, opt := range opts {
		opt(&rc)
	}

	mu.Lock()
	defer mu.Unlock()
	return current().registry.Register(name, fn, rc.file)
}

// RegisterAlias makes an already-registered handler importable from
// another file's handlers without re-declaring it. Idempotent.
func RegisterAlias(h Handler, otherFile string) error {
	mu.Lock()
	defer mu.Unlock()
	return current().registry.RegisterAlias(h, otherFile)
}

// Attr renders the markup attribute value invoking a resolved handler id.
func Attr(id string) string {
	return domain.InvocationString(id)
}

// DefaultBuildOptions returns the options Build uses when nothing
// overrides them.
func DefaultBuildOptions() BuildOptions {
	return domain.DefaultBuildOptions()
}

// Build emits every registered handler module, the transpiled client
// files and the browser bootstrap into opts.OutDir. A missing transpiler
// binary degrades to untranspiled output rather than failing.
func Build(ctx context.Context, opts BuildOptions) (BuildResult, error) {
	mu.Lock()
	r := current()
	mu.Unlock()

	var transpiler ports.Transpiler
	transpiler, err := esbuild.New(r.cfg.Transpiler)
	if err != nil {
		r.log.Warn("transpiler binary not found, emitting untranspiled modules")
		transpiler = esbuild.NewPassThrough()
	}

	comp := compiler.New(r.registry, transpiler, r.log)
	bld := builder.New(
		r.registry, r.resolver, comp,
		fs.NewScanner(), fs.NewOutputFS(), fs.NewHasher(),
		cas.NewBuildInfoStore(r.cfg.InfoFile),
		telemetry.NewNoop(), r.log, build.Version,
	)
	return bld.Build(ctx, opts)
}

// Install publishes a dispatcher loading modules from basePath as the
// process default, the server-side counterpart of the browser bootstrap
// installing globalThis.handlers.
func Install(basePath string, loader ModuleLoader) *Dispatcher {
	return dispatch.Install(basePath, loader)
}

// Call dispatches a resolved handler id through the installed dispatcher,
// binding receiver as the call target.
func Call(ctx context.Context, id string, receiver any, args ...any) (any, error) {
	return dispatch.Call(ctx, id, receiver, args...)
}
