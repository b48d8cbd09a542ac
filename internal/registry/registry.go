// Package registry holds the table of registered client handlers: the
// insertion-ordered handler records and the per-file import registry that
// generated modules are compiled against.
package registry

import (
	"iter"
	"slices"
	"sync"

	"go.trai.ch/zerr"

	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

// importPair is one (binding name, resolved id) entry of a file's import
// registry, kept in registration order.
type importPair struct {
	name string
	id   string
}

// fileImports is the import registry partition of a single registering file.
type fileImports struct {
	pairs []importPair
	ids   map[string]string
}

func (fi *fileImports) add(name, id string) {
	if existing, ok := fi.ids[name]; ok {
		if existing == id {
			return
		}
		fi.ids[name] = id
		for i := range fi.pairs {
			if fi.pairs[i].name == name {
				fi.pairs[i].id = id
				return
			}
		}
		return
	}
	fi.ids[name] = id
	fi.pairs = append(fi.pairs, importPair{name: name, id: id})
}

// Registry is an insertion-ordered handler table with a per-file import
// registry. Handlers registered without a file locator share a global
// partition under the empty key. All methods are safe for concurrent use.
type Registry struct {
	resolver ports.Resolver

	mu      sync.RWMutex
	records map[string]domain.Handler
	order   []string
	imports map[string]*fileImports
}

// New returns an empty registry that resolves handler ids through resolver.
func New(resolver ports.Resolver) *Registry {
	return &Registry{
		resolver: resolver,
		records:  make(map[string]domain.Handler),
		imports:  make(map[string]*fileImports),
	}
}

// Register validates fn, resolves its content-addressed id and records the
// handler under name. An empty name falls back to the declared name of a
// named function expression. Re-registering a name replaces the record but
// keeps its original order slot. The (name, id) pair is also added to the
// import registry of file, so sibling handlers registered from the same
// file can reference each other in their generated modules.
func (r *Registry) Register(name string, fn domain.Func, file string) (domain.Handler, error) {
	if err := fn.Validate(); err != nil {
		return domain.Handler{}, zerr.With(zerr.With(err, "handler", name), "file", file)
	}
	if name == "" {
		name = fn.DeclaredName()
	}
	if name == "" {
		return domain.Handler{}, zerr.Wrap(domain.ErrEmptyName, "anonymous function needs an explicit name")
	}

	id := r.resolver.Resolve(name, fn, file)
	h := domain.Handler{
		Name:   name,
		Source: fn,
		ID:     id,
		File:   domain.NewInternedString(file),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[name]; !ok {
		r.order = append(r.order, name)
	}
	r.records[name] = h
	r.partition(file).add(name, id)
	return h, nil
}

// RegisterAlias adds h's (name, id) pair to the import registry of another
// file, so modules generated from that file import the handler instead of
// re-declaring it. Registering the same alias twice is harmless.
func (r *Registry) RegisterAlias(h domain.Handler, otherFile string) error {
	if h.Name == "" || h.ID == "" {
		return zerr.With(zerr.Wrap(domain.ErrUnresolvedAlias, "failed to register alias"), "handler", h.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partition(otherFile).add(h.Name, h.ID)
	return nil
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (domain.Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.records[name]
	return h, ok
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Handlers iterates the registered handlers in registration order. The
// iteration works on a snapshot, so registering during iteration is safe.
func (r *Registry) Handlers() iter.Seq[domain.Handler] {
	return func(yield func(domain.Handler) bool) {
		r.mu.RLock()
		snapshot := make([]domain.Handler, 0, len(r.order))
		for _, name := range r.order {
			snapshot = append(snapshot, r.records[name])
		}
		r.mu.RUnlock()

		for _, h := range snapshot {
			if !yield(h) {
				return
			}
		}
	}
}

// ImportsFor iterates the (name, id) import pairs recorded for file in
// registration order. The empty locator addresses the global partition.
func (r *Registry) ImportsFor(file string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		r.mu.RLock()
		var snapshot []importPair
		if fi, ok := r.imports[file]; ok {
			snapshot = slices.Clone(fi.pairs)
		}
		r.mu.RUnlock()

		for _, p := range snapshot {
			if !yield(p.name, p.id) {
				return
			}
		}
	}
}

// partition returns the import registry partition for file, creating it on
// first use. Callers must hold mu.
func (r *Registry) partition(file string) *fileImports {
	fi, ok := r.imports[file]
	if !ok {
		fi = &fileImports{ids: make(map[string]string)}
		r.imports[file] = fi
	}
	return fi
}
