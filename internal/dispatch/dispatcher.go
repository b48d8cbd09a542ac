// Package dispatch is the server-side rendition of the browser's lazy
// handler proxy: an explicit capability object that loads a handler module
// on first call, shares in-flight loads per id, and caches the loaded
// callable for the life of the process.
package dispatch

import (
	"context"
	"path"
	"sync"

	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"

	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

// Dispatcher resolves handler ids to loaded modules and forwards calls to
// them. The id is exactly the property the markup invocation string
// accesses; the registry is not consulted at dispatch time, same as the
// browser proxy. All methods are safe for concurrent use.
type Dispatcher struct {
	basePath string
	loader   ports.ModuleLoader

	group singleflight.Group

	mu     sync.RWMutex
	loaded map[string]ports.LoadedModule
}

// New creates a dispatcher loading modules from basePath.
func New(basePath string, loader ports.ModuleLoader) *Dispatcher {
	return &Dispatcher{
		basePath: basePath,
		loader:   loader,
		loaded:   make(map[string]ports.LoadedModule),
	}
}

// Call invokes the handler module for id, loading it on first use. The
// receiver is bound as the call target, mirroring the browser's
// fn.call(receiver, ...args). Concurrent calls for an unloaded id share a
// single load; a failed load is not cached, so the next call retries.
func (d *Dispatcher) Call(ctx context.Context, id string, receiver any, args ...any) (any, error) {
	if id == "" {
		return nil, domain.ErrHandlerNotFound
	}

	d.mu.RLock()
	mod, ok := d.loaded[id]
	d.mu.RUnlock()
	if ok {
		return mod.Call(receiver, args...)
	}

	// singleflight shares the result only while the load is in flight, so
	// a failure leaves nothing behind and the next Call starts fresh.
	v, err, _ := d.group.Do(id, func() (any, error) {
		modPath := path.Join(d.basePath, id+"."+domain.OutputExt)
		loaded, err := d.loader.Load(ctx, modPath)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to load handler module"), "handler_id", id)
		}

		d.mu.Lock()
		d.loaded[id] = loaded
		d.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	mod = v.(ports.LoadedModule)
	return mod.Call(receiver, args...)
}

// Loaded reports whether the module for id has been loaded and cached.
func (d *Dispatcher) Loaded(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.loaded[id]
	return ok
}

var (
	defaultMu sync.RWMutex
	defaultD  *Dispatcher
)

// Install publishes one dispatcher as the process default, the counterpart
// of the bootstrap installing globalThis.handlers in the browser.
func Install(basePath string, loader ports.ModuleLoader) *Dispatcher {
	d := New(basePath, loader)
	defaultMu.Lock()
	defaultD = d
	defaultMu.Unlock()
	return d
}

// Default returns the installed dispatcher, or nil before Install.
func Default() *Dispatcher {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultD
}

// Call dispatches through the installed default dispatcher.
func Call(ctx context.Context, id string, receiver any, args ...any) (any, error) {
	d := Default()
	if d == nil {
		return nil, zerr.Wrap(domain.ErrHandlerNotFound, "no dispatcher installed")
	}
	return d.Call(ctx, id, receiver, args...)
}

// Reset removes the installed dispatcher. Tests only.
func Reset() {
	defaultMu.Lock()
	defaultD = nil
	defaultMu.Unlock()
}
