package domain

// CacheVersion is the current schema version of the persisted resolution cache.
const CacheVersion = 1

// CacheDocument is the persisted form of the handler resolution cache.
// The field names are a wire contract: the document must stay readable by
// every toolchain that consumes the generated output, so the keys use the
// camelCase the original format established.
type CacheDocument struct {
	Version int                   `json:"version"`
	Files   map[string]*FileCache `json:"files"`
}

// FileCache holds the cached resolutions for a single registering file,
// keyed to the file's modification time. A changed mtime invalidates the
// whole entry.
type FileCache struct {
	// MtimeMs is the file's modification time in milliseconds, carrying
	// the sub-second precision of a JavaScript Date timestamp.
	MtimeMs float64 `json:"mtimeMs"`
	// Handlers maps handler names to resolved ids.
	Handlers map[string]string `json:"handlers"`
}

// NewCacheDocument returns an empty document at the current version.
func NewCacheDocument() *CacheDocument {
	return &CacheDocument{
		Version: CacheVersion,
		Files:   make(map[string]*FileCache),
	}
}

// Entry returns the cache entry for a file locator, creating it when absent.
func (d *CacheDocument) Entry(file string) *FileCache {
	if d.Files == nil {
		d.Files = make(map[string]*FileCache)
	}
	entry, ok := d.Files[file]
	if !ok {
		entry = &FileCache{Handlers: make(map[string]string)}
		d.Files[file] = entry
	}
	return entry
}

// Clone returns a deep copy, letting a flush serialize a stable snapshot
// while registrations keep mutating the live document.
func (d *CacheDocument) Clone() *CacheDocument {
	out := &CacheDocument{
		Version: d.Version,
		Files:   make(map[string]*FileCache, len(d.Files)),
	}
	for file, entry := range d.Files {
		handlers := make(map[string]string, len(entry.Handlers))
		for name, id := range entry.Handlers {
			handlers[name] = id
		}
		out.Files[file] = &FileCache{MtimeMs: entry.MtimeMs, Handlers: handlers}
	}
	return out
}
