package ports

import "clientfn.dev/clientfn/internal/core/domain"

// Resolver defines the interface for deriving content-addressed handler ids.
//
//go:generate mockgen -destination=mocks/mock_resolver.go -package=mocks -source=resolver.go
type Resolver interface {
	// Resolve returns the stable id for a handler, {name}_{hash}. An empty
	// file locator always recomputes; a readable locator consults the
	// mtime-keyed cache first.
	Resolve(name string, source domain.Func, file string) string

	// Flush synchronously persists pending cache mutations. Persistence
	// failures are swallowed; the cache is an optimization only.
	Flush()
}
