package compiler

import (
	"context"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/internal/adapters/esbuild" //nolint:depguard // Wired in engine wiring
	"clientfn.dev/clientfn/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"clientfn.dev/clientfn/internal/core/ports"
	"clientfn.dev/clientfn/internal/registry"
)

// NodeID is the unique identifier for the compiler Graft node.
const NodeID graft.ID = "engine.compiler"

func init() {
	graft.Register(graft.Node[*Compiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			esbuild.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Compiler, error) {
			reg, err := graft.Dep[*registry.Registry](ctx)
			if err != nil {
				return nil, err
			}

			transpiler, err := graft.Dep[ports.Transpiler](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(reg, transpiler, log), nil
		},
	})
}
