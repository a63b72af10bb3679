package reactor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/eqrun/internal/adapters/logger" //nolint:depguard // node wiring
	"go.trai.ch/eqrun/internal/adapters/p2"     //nolint:depguard // node wiring
	"go.trai.ch/eqrun/internal/core/ports"
)

// NodeID is the unique identifier for the reactor dependency collector Graft node.
const NodeID graft.ID = "adapter.reactor"

func init() {
	graft.Register(graft.Node[ports.DependencyArtifacts]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{p2.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.DependencyArtifacts, error) {
			factory, err := graft.Dep[ports.ResolverFactory](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewCollector(factory, log), nil
		},
	})
}
