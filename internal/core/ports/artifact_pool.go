package ports

import (
	"context"

	"go.trai.ch/eqrun/internal/core/domain"
)

// ArtifactPool stores downloaded bundles.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifact_pool.go -destination=mocks/mock_artifact_pool.go -package=mocks
type ArtifactPool interface {
	// Fetch returns the local path of artifact, downloading and verifying it when not pooled yet.
	Fetch(ctx context.Context, artifact domain.RemoteArtifact, fileName string) (string, error)
}
