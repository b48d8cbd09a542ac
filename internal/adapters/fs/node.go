package fs

import (
	"context"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/internal/core/ports"
)

const (
	ScannerNodeID graft.ID = "adapter.fs.scanner"
	OutputNodeID  graft.ID = "adapter.fs.output"
	HasherNodeID  graft.ID = "adapter.fs.hasher"
)

func init() {
	// Scanner Node
	graft.Register(graft.Node[ports.Scanner]{
		ID:        ScannerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Scanner, error) {
			return NewScanner(), nil
		},
	})

	// Output Node
	graft.Register(graft.Node[ports.OutputFS]{
		ID:        OutputNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.OutputFS, error) {
			return NewOutputFS(), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
