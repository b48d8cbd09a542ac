package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"

	"clientfn.dev/clientfn/internal/adapters/telemetry/progrock"
	"clientfn.dev/clientfn/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry adapter Graft node.
const NodeID graft.ID = "adapter.telemetry"

// ProgressEnv switches the build progress display on. Node construction
// happens before flag parsing, so the toggle is an environment variable.
const ProgressEnv = "CLIENTFN_PROGRESS"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			if os.Getenv(ProgressEnv) != "" {
				return progrock.New(os.Stderr), nil
			}
			return NewNoop(), nil
		},
	})
}
