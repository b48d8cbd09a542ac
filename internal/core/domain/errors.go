package domain

import "go.trai.ch/zerr"

var (
	// ErrNotFunction is returned when a registered handler source is not a function expression.
	ErrNotFunction = zerr.New("handler source is not a function")

	// ErrEmptyName is returned when a handler is registered without a resolvable name.
	ErrEmptyName = zerr.New("handler name is empty")

	// ErrHandlerNotFound is returned when dispatching a name with no registered handler.
	ErrHandlerNotFound = zerr.New("handler not found")

	// ErrUnresolvedAlias is returned when an alias is registered for a handler
	// that has no name or resolved id yet.
	ErrUnresolvedAlias = zerr.New("alias requires a resolved handler")

	// ErrTranspilerUnavailable is returned when the external transpiler binary cannot be resolved.
	ErrTranspilerUnavailable = zerr.New("transpiler binary not found")

	// ErrOutputDrift is returned by verification when emitted modules no longer match
	// the digests recorded at build time.
	ErrOutputDrift = zerr.New("output drift detected")
)
