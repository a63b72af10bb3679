package cas

import (
	"context"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/grindlemire/graft"
	"go.trai.ch/eqrun/internal/adapters/logger" //nolint:depguard // node wiring
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
)

// NodeID is the unique identifier for the bundle pool Graft node.
const NodeID graft.ID = "adapter.bundle_pool"

// DefaultRoot is the pool location below the user cache directory.
func DefaultRoot() string {
	return filepath.Join(xdg.CacheHome, domain.AppName, "pool")
}

func init() {
	graft.Register(graft.Node[ports.ArtifactPool]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ArtifactPool, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPool(DefaultRoot(), nil, log)
		},
	})
}
