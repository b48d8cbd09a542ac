package ports

import "clientfn.dev/clientfn/internal/core/domain"

//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// CacheStore defines the interface for persisting the handler resolution
// cache. The document is read and rewritten wholesale; there are no
// partial updates.
type CacheStore interface {
	// Load reads the persisted cache document.
	// Returns nil, nil when no document exists yet.
	Load() (*domain.CacheDocument, error)

	// Save rewrites the cache document.
	Save(doc *domain.CacheDocument) error
}

// BuildInfoStore defines the interface for persisting what the last build
// wrote, used by verification to detect output drift.
type BuildInfoStore interface {
	// Load reads the recorded build info.
	// Returns nil, nil when no build has been recorded yet.
	Load() (*domain.BuildInfo, error)

	// Save rewrites the build info.
	Save(info *domain.BuildInfo) error
}
