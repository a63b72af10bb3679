package ports

import (
	"context"

	"go.trai.ch/eqrun/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// ResolverFactory creates target platforms and resolvers.
type ResolverFactory interface {
	// TargetPlatformFactory returns the factory building target platforms from repositories.
	TargetPlatformFactory() TargetPlatformFactory
	// CreateResolver returns a fresh resolver with no seeds.
	CreateResolver(logger Logger) Resolver
}

// TargetPlatformFactory builds the set of units a resolver can choose from.
type TargetPlatformFactory interface {
	// CreateTargetPlatform loads every configured repository and, unless forbidden, local bundles.
	// The execution environment is used verbatim.
	CreateTargetPlatform(
		ctx context.Context,
		cfg domain.TargetPlatformConfig,
		executionEnvironment string,
	) (*domain.TargetPlatform, error)
}

// Resolver computes the transitive closure of seeded dependencies.
type Resolver interface {
	// AddDependency seeds the resolver. An empty version means the best match.
	// It returns an error when the triple is malformed.
	AddDependency(artifactType domain.ArtifactType, id, version string) error

	// ResolveDependencies resolves the seeds against tp.
	// Entries are returned in resolution order with bundle locations on the local disk.
	ResolveDependencies(ctx context.Context, tp *domain.TargetPlatform) ([]domain.ResolutionResult, error)
}
