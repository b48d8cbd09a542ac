// Package naming derives stable content-addressed handler ids, backed by a
// cache keyed on the defining file's modification time.
package naming

import (
	"fmt"
	"os"
	"sync"

	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

var _ ports.Resolver = (*Resolver)(nil)

// Resolver resolves handler ids through the persisted cache. The cache is
// loaded lazily once, mutated in memory, and flushed wholesale by a single
// background goroutine that coalesces bursts of registrations into one
// write. Cache I/O failures are never surfaced; a cold cache only costs
// recomputation.
type Resolver struct {
	store  ports.CacheStore
	logger ports.Logger

	mu     sync.Mutex
	doc    *domain.CacheDocument
	loaded bool
	dirty  bool

	hash func(source string) string
	stat func(path string) (float64, bool)

	flushCh   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewResolver creates a Resolver over the given cache store and starts its
// flush goroutine. Call Close to stop it and checkpoint the cache.
func NewResolver(store ports.CacheStore, logger ports.Logger) *Resolver {
	r := &Resolver{
		store:   store,
		logger:  logger,
		hash:    sourceHash,
		stat:    statMtimeMs,
		flushCh: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	r.wg.Add(1)
	go r.flushLoop()
	return r
}

// Resolve returns the id for (name, source), consulting the cache when the
// handler has a readable defining file. Without one the hash is recomputed
// on every call and the cache is never touched.
func (r *Resolver) Resolve(name string, source domain.Func, file string) string {
	if file == "" {
		return handlerID(name, r.hash(string(source)))
	}
	mtime, ok := r.stat(file)
	if !ok {
		return handlerID(name, r.hash(string(source)))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.load()

	entry := r.doc.Entry(file)
	if entry.MtimeMs != mtime {
		// Any edit to the defining file invalidates every handler it
		// declared, not just the one being resolved.
		entry.MtimeMs = mtime
		clear(entry.Handlers)
	}
	if id, ok := entry.Handlers[name]; ok {
		return id
	}

	id := handlerID(name, r.hash(string(source)))
	entry.Handlers[name] = id
	r.dirty = true
	r.scheduleFlush()
	return id
}

// Flush synchronously persists the cache if it is dirty. Persistence
// failures are dropped; the next mutation schedules a fresh write.
func (r *Resolver) Flush() {
	r.mu.Lock()
	if !r.dirty || r.doc == nil {
		r.mu.Unlock()
		return
	}
	snapshot := r.doc.Clone()
	r.dirty = false
	r.mu.Unlock()

	if err := r.store.Save(snapshot); err != nil {
		r.logger.Debug(fmt.Sprintf("handler cache not persisted: %v", err))
	}
}

// Close stops the flush goroutine after a final checkpoint.
func (r *Resolver) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
		r.Flush()
	})
}

// load reads the persisted document on first use. Unreadable or
// version-mismatched content starts cold.
func (r *Resolver) load() {
	if r.loaded {
		return
	}
	r.loaded = true

	doc, err := r.store.Load()
	if err != nil {
		r.logger.Debug(fmt.Sprintf("handler cache unreadable, starting cold: %v", err))
		doc = nil
	}
	if doc == nil || doc.Version != domain.CacheVersion {
		doc = domain.NewCacheDocument()
	}
	r.doc = doc
}

// scheduleFlush wakes the flush goroutine. The buffered channel bounds any
// burst of registrations to a single pending write.
func (r *Resolver) scheduleFlush() {
	select {
	case r.flushCh <- struct{}{}:
	default:
	}
}

func (r *Resolver) flushLoop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.done:
			return
		case <-r.flushCh:
			r.Flush()
		}
	}
}

// statMtimeMs returns a file's modification time in milliseconds with the
// sub-second fraction a JavaScript mtimeMs carries. The integer and
// fractional parts are split before converting so the value stays exact
// within float64 precision.
func statMtimeMs(path string) (float64, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	ns := info.ModTime().UnixNano()
	return float64(ns/1e6) + float64(ns%1e6)/1e6, true
}
