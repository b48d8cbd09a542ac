// Package domain contains the core types of the client function build system.
package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// Func is the source text of a client-side handler: a JavaScript or
// TypeScript function expression (arrow or function keyword, optionally
// async). The text is treated as opaque beyond the expression check; no
// parsing happens on the server.
type Func string

var (
	functionPattern = regexp.MustCompile(`^(async\s+)?(function\b|\([^)]*\)\s*(:\s*[^=]+)?=>|[A-Za-z_$][A-Za-z0-9_$]*\s*=>)`)
	namePattern     = regexp.MustCompile(`^(?:async\s+)?function\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
)

// Validate checks that the source text is a function expression.
// It returns ErrNotFunction otherwise.
func (f Func) Validate() error {
	src := strings.TrimSpace(string(f))
	if src == "" {
		return zerr.Wrap(ErrNotFunction, "empty source")
	}
	if !functionPattern.MatchString(src) {
		return zerr.Wrap(ErrNotFunction, "not a function expression")
	}
	return nil
}

// DeclaredName returns the name of a named function expression, or an
// empty string for anonymous and arrow functions. Registration falls back
// to it when no explicit name is supplied.
func (f Func) DeclaredName() string {
	m := namePattern.FindStringSubmatch(strings.TrimSpace(string(f)))
	if m == nil {
		return ""
	}
	return m[1]
}

// Handler is a registered client handler: a named function expression,
// the content-addressed id resolved for it, and the locator of the file
// that registered it. The locator partitions the import registry and the
// resolution cache; handlers registered without one share a global
// partition and are never cached.
type Handler struct {
	// Name is the registry key and the binding name in generated imports.
	Name string
	// Source is the function expression that becomes the module's default export.
	Source Func
	// ID is the resolved content-addressed id, {name}_{hash}.
	ID string
	// File is the locator of the server file that registered the handler.
	// Interned because many handlers share the same registering file.
	File InternedString
}

// Validate checks that the handler carries a name and a function source.
func (h Handler) Validate() error {
	if h.Name == "" {
		return ErrEmptyName
	}
	if err := h.Source.Validate(); err != nil {
		return zerr.With(err, "handler", h.Name)
	}
	return nil
}

// Invocation renders the handler's client-side call for use in markup
// attributes.
func (h Handler) Invocation() string {
	return InvocationString(h.ID)
}

// FileName returns the output file name the handler's module is written to.
func (h Handler) FileName() string {
	return h.ID + "." + OutputExt
}

// InvocationString renders the client-side call for a resolved handler id,
// binding the element as the receiver and forwarding the DOM event. This is
// the exact text placed into markup attributes.
func InvocationString(id string) string {
	return "handlers." + id + "(this, event)"
}

// ImportLine renders the import statement a generated module uses to pull
// in another handler's default export under its registered name.
func ImportLine(name, id, ext string) string {
	return `import { default as ` + name + ` } from "./` + id + `.` + ext + `";`
}
