package ports

import (
	"context"

	"go.trai.ch/eqrun/internal/core/domain"
)

// DependencyArtifacts computes the resolved artifact set of a project.
//
//go:generate go run go.uber.org/mock/mockgen -source=dependency_artifacts.go -destination=mocks/mock_dependency_artifacts.go -package=mocks
type DependencyArtifacts interface {
	// Collect returns the project's resolved artifacts in resolver order.
	// The set may contain the project itself.
	Collect(ctx context.Context, project *domain.Project) ([]domain.ArtifactDescriptor, error)
}
