package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/internal/adapters/logger"
	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
)

const (
	LoaderNodeID graft.ID = "adapter.config_loader"
	NodeID       graft.ID = "adapter.config"
)

// FileEnv overrides the configuration file path. Components are
// constructed before the CLI parses flags, so the override is an
// environment variable rather than a flag.
const FileEnv = "CLIENTFN_CONFIG"

func init() {
	// Loader Node
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	// Loaded Config Node
	graft.Register(graft.Node[domain.Config]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoaderNodeID},
		Run: func(ctx context.Context) (domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return domain.Config{}, err
			}
			return loader.Load(os.Getenv(FileEnv))
		},
	})
}
