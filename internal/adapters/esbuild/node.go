package esbuild

import (
	"context"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/internal/adapters/config"
	"clientfn.dev/clientfn/internal/adapters/logger"
	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

const NodeID graft.ID = "adapter.transpiler"

func init() {
	graft.Register(graft.Node[ports.Transpiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Transpiler, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			transpiler, err := New(cfg.Transpiler)
			if err != nil {
				// A missing binary degrades the output, it does not stop
				// the build.
				log.Warn("transpiler binary not found, emitting untranspiled modules")
				return NewPassThrough(), nil
			}
			return transpiler, nil
		},
	})
}
