package builder

import (
	"context"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"clientfn.dev/clientfn/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"clientfn.dev/clientfn/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"clientfn.dev/clientfn/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"clientfn.dev/clientfn/internal/build"
	"clientfn.dev/clientfn/internal/core/ports"
	"clientfn.dev/clientfn/internal/engine/compiler"
	"clientfn.dev/clientfn/internal/engine/naming"
	"clientfn.dev/clientfn/internal/registry"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "engine.builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			registry.NodeID,
			naming.NodeID,
			compiler.NodeID,
			fs.ScannerNodeID,
			fs.OutputNodeID,
			fs.HasherNodeID,
			cas.BuildInfoNodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			reg, err := graft.Dep[*registry.Registry](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			comp, err := graft.Dep[*compiler.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			scanner, err := graft.Dep[ports.Scanner](ctx)
			if err != nil {
				return nil, err
			}

			output, err := graft.Dep[ports.OutputFS](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			infoStore, err := graft.Dep[ports.BuildInfoStore](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(reg, resolver, comp, scanner, output, hasher, infoStore, tel, log, build.Version), nil
		},
	})
}
