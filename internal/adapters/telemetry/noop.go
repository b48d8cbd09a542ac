// Package telemetry provides the default no-op telemetry adapter. The
// progrock-backed recorder lives in the progrock subpackage.
package telemetry

import (
	"context"
	"io"

	"clientfn.dev/clientfn/internal/core/ports"
)

// Noop is a no-op implementation of ports.Telemetry.
type Noop struct{}

// NewNoop creates a new no-op telemetry.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns a vertex that records nothing.
func (t *Noop) Record(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
	return ctx, &NoopVertex{}
}

// Close does nothing.
func (t *Noop) Close() error { return nil }

// NoopVertex is a no-op implementation of ports.Vertex.
type NoopVertex struct{}

// Stdout discards everything written to it.
func (v *NoopVertex) Stdout() io.Writer { return io.Discard }

// Stderr discards everything written to it.
func (v *NoopVertex) Stderr() io.Writer { return io.Discard }

// Complete does nothing.
func (v *NoopVertex) Complete(_ error) {}

// Cached does nothing.
func (v *NoopVertex) Cached() {}
