// Package launch provisions an Equinox runtime from p2 repositories and forks it.
package launch

import (
	"errors"

	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// Request is a seeded resolver and the target platform it resolves against.
type Request struct {
	Platform             domain.TargetPlatformConfig
	ExecutionEnvironment string
	Resolver             ports.Resolver
}

// BuildRequest validates cfg and seeds a fresh resolver with the user dependencies,
// followed by the default bundles when enabled.
func BuildRequest(cfg domain.EclipseRunConfig, factory ports.ResolverFactory, logger ports.Logger) (*Request, error) {
	if len(cfg.Repositories) == 0 {
		return nil, errors.Join(domain.ErrConfiguration, domain.ErrNoRepositories)
	}

	req := &Request{
		Platform: domain.TargetPlatformConfig{
			Repositories:              cfg.Repositories,
			ForceIgnoreLocalArtifacts: true,
		},
		ExecutionEnvironment: cfg.EE(),
		Resolver:             factory.CreateResolver(logger),
	}

	for _, dep := range cfg.Dependencies {
		if err := req.Resolver.AddDependency(dep.Type, dep.ArtifactID, dep.Version); err != nil {
			return nil, errors.Join(domain.ErrConfiguration, domain.ErrInvalidDependency,
				zerr.With(zerr.Wrap(err, dep.String()), "dependency", dep.String()))
		}
	}

	if cfg.AddDefaultDependencies {
		for _, id := range domain.DefaultBundles {
			if err := req.Resolver.AddDependency(domain.TypeEclipsePlugin, id, ""); err != nil {
				return nil, errors.Join(domain.ErrInternal, zerr.With(err, "bundle", id))
			}
		}
	}

	return req, nil
}
