// Package reactor computes the resolved artifact set of a project inside its build.
package reactor

import (
	"context"
	"errors"
	"path/filepath"

	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// Collector resolves a project against its repositories and the other projects of its build.
type Collector struct {
	factory ports.ResolverFactory
	logger  ports.Logger
}

var _ ports.DependencyArtifacts = (*Collector)(nil)

// NewCollector creates a Collector.
func NewCollector(factory ports.ResolverFactory, logger ports.Logger) *Collector {
	return &Collector{factory: factory, logger: logger}
}

// Collect implements ports.DependencyArtifacts.
// Only bundles are returned; entries built by the reactor carry their ReactorProject.
func (c *Collector) Collect(ctx context.Context, project *domain.Project) ([]domain.ArtifactDescriptor, error) {
	self := project.AsReactorProject()
	reactor := make([]*domain.ReactorProject, 0, len(project.Reactor)+1)
	reactor = append(reactor, self)
	reactor = append(reactor, project.Reactor...)

	cfg := domain.TargetPlatformConfig{
		Repositories: project.Repositories,
		Reactor:      reactor,
	}
	tp, err := c.factory.TargetPlatformFactory().CreateTargetPlatform(ctx, cfg, project.EclipseRun.EE())
	if err != nil {
		return nil, errors.Join(domain.ErrResolutionFailed, err)
	}

	resolver := c.factory.CreateResolver(c.logger)
	if err := resolver.AddDependency(domain.TypeEclipsePlugin, project.ID, selfVersion(tp, self)); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrConfiguration, domain.ErrInvalidDependency, err), "project", project.ID)
	}

	results, err := resolver.ResolveDependencies(ctx, tp)
	if err != nil {
		return nil, errors.Join(domain.ErrResolutionFailed, err)
	}

	var artifacts []domain.ArtifactDescriptor
	for _, result := range results {
		for _, e := range result.Entries {
			if !e.Type.IsBundle() {
				continue
			}
			location := e.Location
			if e.Reactor != nil {
				location = filepath.Clean(e.Reactor.BaseDir)
			}
			artifacts = append(artifacts, domain.ArtifactDescriptor{
				Key:        e.Key(),
				Location:   location,
				Classifier: e.Classifier,
				Reactor:    e.Reactor,
			})
		}
	}
	return artifacts, nil
}

// selfVersion pins the seed to the unit built from the project itself so a higher
// version in a repository cannot shadow it.
func selfVersion(tp *domain.TargetPlatform, self *domain.ReactorProject) string {
	for _, u := range tp.Units {
		if u.Reactor == self {
			return u.Version.String()
		}
	}
	return ""
}
