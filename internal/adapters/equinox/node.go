package equinox

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/eqrun/internal/adapters/logger" //nolint:depguard // node wiring
	"go.trai.ch/eqrun/internal/core/ports"
)

const (
	// InstallationNodeID is the unique identifier for the installation factory Graft node.
	InstallationNodeID graft.ID = "adapter.equinox.installation"
	// LauncherNodeID is the unique identifier for the launcher Graft node.
	LauncherNodeID graft.ID = "adapter.equinox.launcher"
)

func init() {
	graft.Register(graft.Node[ports.InstallationFactory]{
		ID:        InstallationNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.InstallationFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInstallationFactory(log), nil
		},
	})

	graft.Register(graft.Node[ports.Launcher]{
		ID:        LauncherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Launcher, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLauncher(log), nil
		},
	})
}
