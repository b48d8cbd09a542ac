package registry

import (
	"context"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/internal/core/ports"
	"clientfn.dev/clientfn/internal/engine/naming"
)

// NodeID is the unique identifier for the registry Graft node.
const NodeID graft.ID = "registry.handlers"

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			naming.NodeID,
		},
		Run: func(ctx context.Context) (*Registry, error) {
			resolver, err := graft.Dep[ports.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			return New(resolver), nil
		},
	})
}
