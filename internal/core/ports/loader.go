package ports

import "context"

// LoadedModule is a handler module loaded for server-side dispatch.
type LoadedModule struct {
	// ID is the resolved handler id the module was loaded for.
	ID string
	// Call invokes the module's default export with the receiver bound
	// first and the remaining arguments passed positionally.
	Call func(receiver any, args ...any) (any, error)
}

// ModuleLoader defines the interface for loading an emitted handler module
// so it can be invoked server-side.
//
//go:generate mockgen -source=loader.go -destination=mocks/mock_loader.go -package=mocks
type ModuleLoader interface {
	// Load loads the module at the given path. Load failures surface to
	// the caller; nothing is cached on failure.
	Load(ctx context.Context, path string) (LoadedModule, error)
}
