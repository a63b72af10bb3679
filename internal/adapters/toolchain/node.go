package toolchain

import (
	"context"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/grindlemire/graft"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
)

// NodeID is the unique identifier for the toolchain provider Graft node.
const NodeID graft.ID = "adapter.toolchain"

// DefaultPath is the toolchains file below the user config directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, domain.AppName, domain.ToolchainsFileName)
}

func init() {
	graft.Register(graft.Node[ports.ToolchainProvider]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ToolchainProvider, error) {
			return NewProvider(DefaultPath()), nil
		},
	})
}
