package p2

import (
	"context"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/grindlemire/graft"
	"go.trai.ch/eqrun/internal/adapters/cas"    //nolint:depguard // node wiring
	"go.trai.ch/eqrun/internal/adapters/logger" //nolint:depguard // node wiring
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
)

// NodeID is the unique identifier for the p2 resolver Graft node.
const NodeID graft.ID = "adapter.p2"

// LocalBundlesDir is where locally installed bundles are picked up from.
func LocalBundlesDir() string {
	return filepath.Join(xdg.DataHome, domain.AppName, "bundles")
}

func init() {
	graft.Register(graft.Node[ports.ResolverFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cas.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ResolverFactory, error) {
			pool, err := graft.Dep[ports.ArtifactPool](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(nil, pool, log, LocalBundlesDir()), nil
		},
	})
}
