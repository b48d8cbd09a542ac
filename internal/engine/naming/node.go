package naming

import (
	"context"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"clientfn.dev/clientfn/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"clientfn.dev/clientfn/internal/core/ports"
)

// NodeID is the unique identifier for the naming resolver Graft node.
const NodeID graft.ID = "engine.naming"

func init() {
	graft.Register(graft.Node[ports.Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cas.CacheStoreNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (ports.Resolver, error) {
			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewResolver(store, log), nil
		},
	})
}
