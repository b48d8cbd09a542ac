package cas

import (
	"context"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/internal/adapters/config"
	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

const (
	CacheStoreNodeID graft.ID = "adapter.cache_store"
	BuildInfoNodeID  graft.ID = "adapter.build_info_store"
)

func init() {
	// Cache Store Node
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        CacheStoreNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewCacheStore(cfg.CacheFile), nil
		},
	})

	// Build Info Store Node
	graft.Register(graft.Node[ports.BuildInfoStore]{
		ID:        BuildInfoNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.BuildInfoStore, error) {
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuildInfoStore(cfg.InfoFile), nil
		},
	})
}
