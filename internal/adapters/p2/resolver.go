package p2

import (
	"context"
	"runtime"
	"strings"

	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

type seed struct {
	label string
	req   domain.Requirement
}

// Resolver computes the transitive closure of its seeds over a target platform.
// A Resolver is used for one resolution and is not safe for concurrent use.
type Resolver struct {
	pool   ports.ArtifactPool
	logger ports.Logger
	env    map[string]string
	seeds  []seed
}

var _ ports.Resolver = (*Resolver)(nil)

// NewResolver creates a resolver that fetches bundles through pool.
func NewResolver(pool ports.ArtifactPool, logger ports.Logger) *Resolver {
	return &Resolver{pool: pool, logger: logger, env: HostEnvironment()}
}

// WithEnvironment overrides the filter properties of the target environment.
func (r *Resolver) WithEnvironment(env map[string]string) *Resolver {
	r.env = env
	return r
}

// HostEnvironment returns the filter properties describing the running host.
func HostEnvironment() map[string]string {
	goos, ws := runtime.GOOS, "gtk"
	switch goos {
	case "windows":
		goos, ws = "win32", "win32"
	case "darwin":
		goos, ws = "macosx", "cocoa"
	}
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	case "386":
		arch = "x86"
	}
	return map[string]string{
		"osgi.os":                             goos,
		"osgi.ws":                             ws,
		"osgi.arch":                           arch,
		"org.eclipse.update.install.features": "true",
	}
}

// AddDependency implements ports.Resolver.
func (r *Resolver) AddDependency(artifactType domain.ArtifactType, id, version string) error {
	label := domain.DependencySeed{Type: artifactType, ArtifactID: id, Version: version}.String()
	invalid := func(reason string) error {
		return zerr.With(zerr.Wrap(domain.ErrInvalidArtifactReference, reason), "artifact", label)
	}

	if !artifactType.IsKnown() {
		return invalid("unknown artifact type")
	}
	if id == "" || strings.ContainsAny(id, " \t\r\n") {
		return invalid("malformed artifact id")
	}

	rng := domain.AnyVersion
	if v := strings.TrimSpace(version); v != "" {
		if v[0] == '[' || v[0] == '(' {
			parsed, err := domain.ParseVersionRange(v)
			if err != nil {
				return zerr.With(err, "artifact", label)
			}
			rng = parsed
		} else {
			parsed, err := domain.ParseVersion(v)
			if err != nil {
				return zerr.With(err, "artifact", label)
			}
			rng = domain.ExactVersion(parsed)
		}
	}

	req := domain.Requirement{Range: rng}
	switch artifactType {
	case domain.TypeEclipsePlugin, domain.TypeEclipseFragment:
		req.Namespace = domain.NamespaceBundle
		req.Name = domain.NewInternedString(id)
	case domain.TypeEclipseFeature:
		req.Namespace = domain.NamespaceIU
		req.Name = domain.NewInternedString(id + domain.FeatureGroupSuffix)
	default:
		req.Namespace = domain.NamespaceIU
		req.Name = domain.NewInternedString(id)
	}

	r.seeds = append(r.seeds, seed{label: label, req: req})
	return nil
}

type pending struct {
	req        domain.Requirement
	requiredBy string
}

// ResolveDependencies implements ports.Resolver.
func (r *Resolver) ResolveDependencies(ctx context.Context, tp *domain.TargetPlatform) ([]domain.ResolutionResult, error) {
	ee, err := ParseExecutionEnvironment(tp.ExecutionEnvironment)
	if err != nil {
		return nil, err
	}

	providers := indexProviders(tp.Units)
	var order []*domain.InstallableUnit

	queue := make([]pending, 0, len(r.seeds))
	for _, s := range r.seeds {
		queue = append(queue, pending{req: s.req, requiredBy: s.label})
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := queue[0]
		queue = queue[1:]
		req := next.req

		if req.Optional || !r.applies(req.Filter) || ee.Satisfies(req) {
			continue
		}
		if req.Match != "" && req.Namespace != domain.NamespaceEE {
			// Property match requirements outside osgi.ee are not evaluated.
			continue
		}
		if satisfiedBy(order, req) {
			continue
		}

		var unit *domain.InstallableUnit
		if req.Match == "" {
			unit = r.bestProvider(providers[providerKey(req.Namespace, req.Name)], req)
		}
		if unit == nil {
			msg := "no unit provides " + req.String() + " required by " + next.requiredBy
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrUnsatisfiedRequirement, msg),
				"requirement", req.String()), "required_by", next.requiredBy)
		}

		order = append(order, unit)
		r.logger.Debug("Selected " + unit.String())
		for _, dep := range unit.Requires {
			queue = append(queue, pending{req: dep, requiredBy: unit.String()})
		}
	}

	entries, err := r.materialize(ctx, tp, order)
	if err != nil {
		return nil, err
	}
	return []domain.ResolutionResult{{Entries: entries}}, nil
}

func (r *Resolver) applies(filter string) bool {
	if filter == "" {
		return true
	}
	f, err := ParseFilter(filter)
	if err != nil {
		r.logger.Warn("Ignoring malformed filter " + filter)
		return false
	}
	return f.Match(r.env)
}

// bestProvider returns the highest version among candidates satisfying req.
// Ties keep the first candidate in repository order.
func (r *Resolver) bestProvider(candidates []*domain.InstallableUnit, req domain.Requirement) *domain.InstallableUnit {
	var best *domain.InstallableUnit
	for _, u := range candidates {
		if !u.Satisfies(req) || !r.applies(u.Filter) {
			continue
		}
		if best == nil || u.Version.Compare(best.Version) > 0 {
			best = u
		}
	}
	return best
}

func satisfiedBy(units []*domain.InstallableUnit, req domain.Requirement) bool {
	for _, u := range units {
		if u.Satisfies(req) {
			return true
		}
	}
	return false
}

func providerKey(namespace string, name domain.InternedString) string {
	return namespace + "/" + name.String()
}

func indexProviders(units []*domain.InstallableUnit) map[string][]*domain.InstallableUnit {
	idx := make(map[string][]*domain.InstallableUnit)
	for _, u := range units {
		seen := make(map[string]bool, len(u.Provides))
		for _, c := range u.Provides {
			key := providerKey(c.Namespace, c.Name)
			if seen[key] {
				continue
			}
			seen[key] = true
			idx[key] = append(idx[key], u)
		}
	}
	return idx
}

// materialize turns the selected units into entries, fetching remote bundles into the pool.
func (r *Resolver) materialize(
	ctx context.Context,
	tp *domain.TargetPlatform,
	units []*domain.InstallableUnit,
) ([]domain.ResolvedEntry, error) {
	entries := make([]domain.ResolvedEntry, len(units))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, u := range units {
		entries[i] = domain.ResolvedEntry{
			Type:     u.Type(),
			ID:       u.ID.String(),
			Version:  u.Version.String(),
			Location: u.Location,
			Reactor:  u.Reactor,
		}
		if u.Reactor != nil {
			entries[i].Classifier = u.Properties[domain.PropertyMavenClassifier]
		}
		if u.Location != "" || !entries[i].Type.IsBundle() {
			continue
		}

		g.Go(func() error {
			artifact, ok := tp.Artifacts[u.UnitKey()]
			if !ok {
				return zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "no bundle artifact published"), "unit", u.String())
			}
			path, err := r.pool.Fetch(ctx, artifact, u.UnitKey()+".jar")
			if err != nil {
				return zerr.With(err, "unit", u.String())
			}
			entries[i].Location = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
