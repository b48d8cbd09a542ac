// Package cas implements the content-addressed state stores: the handler
// resolution cache and the build info record, each a flat JSON file.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

var (
	_ ports.CacheStore     = (*CacheStore)(nil)
	_ ports.BuildInfoStore = (*BuildInfoStore)(nil)
)

// CacheStore persists the handler resolution cache.
type CacheStore struct {
	path string
}

// NewCacheStore creates a cache store backed by the file at path.
func NewCacheStore(path string) *CacheStore {
	return &CacheStore{path: filepath.Clean(path)}
}

// Load reads the persisted cache document. Returns nil, nil when no
// document exists yet.
func (s *CacheStore) Load() (*domain.CacheDocument, error) {
	return readDocument[domain.CacheDocument](s.path, "resolution cache")
}

// Save rewrites the cache document.
func (s *CacheStore) Save(doc *domain.CacheDocument) error {
	return writeDocument(s.path, "resolution cache", doc)
}

// Path returns the file the store reads and writes.
func (s *CacheStore) Path() string {
	return s.path
}

// BuildInfoStore persists what the last build wrote.
type BuildInfoStore struct {
	path string
}

// NewBuildInfoStore creates a build info store backed by the file at path.
func NewBuildInfoStore(path string) *BuildInfoStore {
	return &BuildInfoStore{path: filepath.Clean(path)}
}

// Load reads the recorded build info. Returns nil, nil when no build has
// been recorded yet.
func (s *BuildInfoStore) Load() (*domain.BuildInfo, error) {
	return readDocument[domain.BuildInfo](s.path, "build info")
}

// Save rewrites the build info.
func (s *BuildInfoStore) Save(info *domain.BuildInfo) error {
	return writeDocument(s.path, "build info", info)
}

// Path returns the file the store reads and writes.
func (s *BuildInfoStore) Path() string {
	return s.path
}

func readDocument[T any](path, what string) (*T, error) {
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read "+what), "path", path)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal "+what), "path", path)
	}

	return &doc, nil
}

func writeDocument[T any](path, what string, doc *T) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal "+what)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for "+what), "path", path)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write "+what), "path", path)
	}

	return nil
}
