package launch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/eqrun/internal/adapters/equinox"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/eqrun/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/eqrun/internal/adapters/p2"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/eqrun/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/eqrun/internal/adapters/toolchain" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/eqrun/internal/core/ports"
)

// NodeID is the unique identifier for the launch runner Graft node.
const NodeID graft.ID = "engine.launch"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			p2.NodeID,
			equinox.InstallationNodeID,
			equinox.LauncherNodeID,
			toolchain.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			factory, err := graft.Dep[ports.ResolverFactory](ctx)
			if err != nil {
				return nil, err
			}

			installations, err := graft.Dep[ports.InstallationFactory](ctx)
			if err != nil {
				return nil, err
			}

			launcher, err := graft.Dep[ports.Launcher](ctx)
			if err != nil {
				return nil, err
			}

			toolchains, err := graft.Dep[ports.ToolchainProvider](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(factory, installations, launcher, toolchains, tracer, log), nil
		},
	})
}
