package listing

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/eqrun/internal/adapters/logger"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/eqrun/internal/adapters/reactor" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/eqrun/internal/core/ports"
)

// NodeID is the unique identifier for the dependency lister Graft node.
const NodeID graft.ID = "engine.listing"

func init() {
	graft.Register(graft.Node[*Lister]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{reactor.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Lister, error) {
			artifacts, err := graft.Dep[ports.DependencyArtifacts](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewLister(artifacts, log), nil
		},
	})
}
