package launch

import (
	"context"
	"errors"

	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
)

// Assembler turns a resolution request into the bundle list of an installation.
type Assembler struct {
	factory ports.ResolverFactory
}

// NewAssembler creates an Assembler.
func NewAssembler(factory ports.ResolverFactory) *Assembler {
	return &Assembler{factory: factory}
}

// Assemble resolves req and keeps the eclipse-plugin entries in resolver order.
func (a *Assembler) Assemble(ctx context.Context, req *Request) (*domain.InstallationDescription, error) {
	tp, err := a.factory.TargetPlatformFactory().CreateTargetPlatform(ctx, req.Platform, req.ExecutionEnvironment)
	if err != nil {
		return nil, errors.Join(domain.ErrResolutionFailed, err)
	}

	results, err := req.Resolver.ResolveDependencies(ctx, tp)
	if err != nil {
		return nil, errors.Join(domain.ErrResolutionFailed, err)
	}

	desc := &domain.InstallationDescription{}
	for _, result := range results {
		for _, entry := range result.Entries {
			if entry.Type == domain.TypeEclipsePlugin {
				desc.AddBundle(entry.Key(), entry.Location)
			}
		}
	}
	return desc, nil
}
