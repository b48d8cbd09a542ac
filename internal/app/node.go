package app

import (
	"context"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"clientfn.dev/clientfn/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"clientfn.dev/clientfn/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"clientfn.dev/clientfn/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"clientfn.dev/clientfn/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"clientfn.dev/clientfn/internal/core/domain"
	"clientfn.dev/clientfn/internal/core/ports"
	"clientfn.dev/clientfn/internal/engine/builder"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the App with the collaborators the CLI entry point
// needs directly.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			builder.NodeID,
			watcher.NodeID,
			fs.OutputNodeID,
			fs.HasherNodeID,
			cas.BuildInfoNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	bld, err := graft.Dep[*builder.Builder](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
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

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, bld, w, output, hasher, infoStore, log), nil
}
