// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "clientfn.dev/clientfn/internal/adapters/cas"
	_ "clientfn.dev/clientfn/internal/adapters/config"
	_ "clientfn.dev/clientfn/internal/adapters/esbuild"
	_ "clientfn.dev/clientfn/internal/adapters/fs"
	_ "clientfn.dev/clientfn/internal/adapters/logger"
	_ "clientfn.dev/clientfn/internal/adapters/telemetry"
	_ "clientfn.dev/clientfn/internal/adapters/watcher"
	// Register registry, engine and app nodes.
	_ "clientfn.dev/clientfn/internal/app"
	_ "clientfn.dev/clientfn/internal/engine/builder"
	_ "clientfn.dev/clientfn/internal/engine/compiler"
	_ "clientfn.dev/clientfn/internal/engine/naming"
	_ "clientfn.dev/clientfn/internal/registry"
)
