package p2

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory builds target platforms and resolvers.
type Factory struct {
	reader       *Reader
	pool         ports.ArtifactPool
	logger       ports.Logger
	localBundles string
}

var (
	_ ports.ResolverFactory       = (*Factory)(nil)
	_ ports.TargetPlatformFactory = (*Factory)(nil)
)

// NewFactory creates a Factory. localBundles is the directory scanned for locally
// installed bundles. It may be empty or missing.
func NewFactory(client *http.Client, pool ports.ArtifactPool, logger ports.Logger, localBundles string) *Factory {
	return &Factory{
		reader:       NewReader(client, logger),
		pool:         pool,
		logger:       logger,
		localBundles: localBundles,
	}
}

// TargetPlatformFactory implements ports.ResolverFactory.
func (f *Factory) TargetPlatformFactory() ports.TargetPlatformFactory {
	return f
}

// CreateResolver implements ports.ResolverFactory.
func (f *Factory) CreateResolver(logger ports.Logger) ports.Resolver {
	if logger == nil {
		logger = f.logger
	}
	return NewResolver(f.pool, logger)
}

// CreateTargetPlatform implements ports.TargetPlatformFactory.
// Unit precedence is reactor projects, then repositories in declaration order, then local bundles.
func (f *Factory) CreateTargetPlatform(
	ctx context.Context,
	cfg domain.TargetPlatformConfig,
	executionEnvironment string,
) (*domain.TargetPlatform, error) {
	tp := &domain.TargetPlatform{
		ExecutionEnvironment: executionEnvironment,
		Artifacts:            make(map[string]domain.RemoteArtifact),
	}
	seen := make(map[string]bool)
	add := func(u *domain.InstallableUnit) {
		if seen[u.UnitKey()] {
			return
		}
		seen[u.UnitKey()] = true
		tp.Units = append(tp.Units, u)
	}

	for _, rp := range cfg.Reactor {
		units, err := reactorUnits(rp)
		if err != nil {
			return nil, err
		}
		for _, u := range units {
			add(u)
		}
	}

	repos, err := f.reader.LoadAll(ctx, cfg.Repositories)
	if err != nil {
		return nil, err
	}
	for _, repo := range repos {
		for _, u := range repo.Units {
			add(u)
		}
		for key, a := range repo.Artifacts {
			if _, ok := tp.Artifacts[key]; !ok {
				tp.Artifacts[key] = a
			}
		}
	}

	if !cfg.ForceIgnoreLocalArtifacts {
		units, err := f.localUnits()
		if err != nil {
			return nil, err
		}
		for _, u := range units {
			add(u)
		}
	}

	f.logger.Debug("Target platform contains " + pluralUnits(len(tp.Units)))
	return tp, nil
}

// reactorUnits returns the unit built from the project's base directory, followed by
// one unit per classified artifact that is itself a bundle, in classifier order.
func reactorUnits(rp *domain.ReactorProject) ([]*domain.InstallableUnit, error) {
	main, err := reactorUnit(rp, "", rp.BaseDir)
	if err != nil {
		return nil, err
	}
	units := []*domain.InstallableUnit{main}

	classifiers := make([]string, 0, len(rp.Artifacts))
	for c := range rp.Artifacts {
		if c != "" {
			classifiers = append(classifiers, c)
		}
	}
	sort.Strings(classifiers)

	for _, c := range classifiers {
		u, err := reactorUnit(rp, c, rp.Artifact(c))
		if err != nil {
			// Attached artifacts that are not bundles (zips, poms) are not units.
			continue
		}
		units = append(units, u)
	}
	return units, nil
}

func reactorUnit(rp *domain.ReactorProject, classifier, location string) (*domain.InstallableUnit, error) {
	m, err := ReadManifest(location)
	if err != nil {
		return nil, zerr.With(err, "project", rp.ID)
	}
	u, err := m.Unit(location)
	if err != nil {
		return nil, zerr.With(err, "project", rp.ID)
	}
	u.Reactor = rp
	if classifier != "" {
		if u.Properties == nil {
			u.Properties = make(map[string]string, 1)
		}
		u.Properties[domain.PropertyMavenClassifier] = classifier
	}
	return u, nil
}

// localUnits reads every bundle jar or exploded bundle in the local bundle directory.
func (f *Factory) localUnits() ([]*domain.InstallableUnit, error) {
	if f.localBundles == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(f.localBundles)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read local bundles"), "path", f.localBundles)
	}

	var units []*domain.InstallableUnit
	for _, e := range entries {
		if !e.IsDir() && !strings.HasSuffix(e.Name(), ".jar") {
			continue
		}
		location := filepath.Join(f.localBundles, e.Name())
		m, err := ReadManifest(location)
		if err != nil {
			f.logger.Warn("Ignoring local bundle " + location)
			continue
		}
		u, err := m.Unit(location)
		if err != nil {
			f.logger.Warn("Ignoring local bundle " + location)
			continue
		}
		units = append(units, u)
	}
	return units, nil
}

func pluralUnits(n int) string {
	if n == 1 {
		return "1 unit"
	}
	return humanize.Comma(int64(n)) + " units"
}
