package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/eqrun/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/eqrun/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/eqrun/internal/adapters/toolchain" //nolint:depguard // Wired in app layer
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/eqrun/internal/engine/launch"
	"go.trai.ch/eqrun/internal/engine/listing"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			launch.NodeID,
			listing.NodeID,
			toolchain.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[*launch.Runner](ctx)
	if err != nil {
		return nil, err
	}

	lister, err := graft.Dep[*listing.Lister](ctx)
	if err != nil {
		return nil, err
	}

	toolchains, err := graft.Dep[ports.ToolchainProvider](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, runner, lister, toolchains, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
