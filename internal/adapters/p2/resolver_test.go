package p2_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/eqrun/internal/adapters/cas"
	"go.trai.ch/eqrun/internal/adapters/p2"
	"go.trai.ch/eqrun/internal/core/domain"
)

var linux = map[string]string{"osgi.os": "linux", "osgi.ws": "gtk", "osgi.arch": "x86_64"}

const (
	reqLib      = "<required namespace='osgi.bundle' name='org.example.lib' range='[1.0.0,2.0.0)'/>"
	reqNative   = "<required namespace='java.package' name='org.example.native' range='0.0.0'/>"
	reqXML      = "<required namespace='java.package' name='javax.xml.parsers' range='0.0.0'/>"
	reqEE       = "<requiredProperties namespace='osgi.ee' match='(&amp;(osgi.ee=JavaSE)(version=1.6))'/>"
	reqOptional = "<required namespace='osgi.bundle' name='org.example.missing' range='0.0.0' optional='true'/>"
	reqNonGreed = "<required namespace='osgi.bundle' name='org.example.other' range='0.0.0' greedy='false'/>"
	reqWin      = "<required namespace='osgi.bundle' name='org.example.win32only' range='0.0.0'><filter>(osgi.os=win32)</filter></required>"
	reqMatchAny = "<required match='providedCapabilities.exists(x | x.name == $0)' matchParameters='[&apos;a&apos;]'/>"
)

func mainUnits() []fixtureUnit {
	return []fixtureUnit{
		{
			id: "org.example.app", version: "1.0.0", bundle: true,
			requires: []string{reqLib, reqNative, reqXML, reqEE, reqOptional, reqNonGreed, reqWin, reqMatchAny},
		},
		{id: "org.example.lib", version: "1.0.0", bundle: true},
		{id: "org.example.lib", version: "1.5.0.v2024", bundle: true},
		{id: "org.example.lib", version: "2.0.0", bundle: true},
		{
			id: "org.example.native.win32", version: "1.0.0", bundle: true, filter: "(osgi.os=win32)",
			provides: []string{"java.package/org.example.native/1.0.0"},
		},
		{
			id: "org.example.native.linux", version: "1.0.0", bundle: true, filter: "(&amp;(osgi.os=linux)(osgi.arch=x86_64))",
			provides: []string{"java.package/org.example.native/1.0.0"},
			requires: []string{"<required namespace='osgi.bundle' name='org.example.lib' range='1.0.0'/>"},
		},
		{id: "org.example.feature.feature.group", version: "1.0.0",
			requires: []string{"<required namespace='org.eclipse.equinox.p2.iu' name='org.example.app' range='[1.0.0,1.0.0]'/>"}},
	}
}

type resolveFixture struct {
	factory *p2.Factory
	pool    *cas.Pool
	url     string
}

func newResolveFixture(t *testing.T, corrupt ...string) *resolveFixture {
	t.Helper()
	files := map[string][]byte{}
	addRepo(files, "/main", mainUnits(), corrupt...)
	srv := serveRepo(t, files)

	log := quietLogger(t)
	pool, err := cas.NewPool(t.TempDir(), srv.Client(), log)
	require.NoError(t, err)

	return &resolveFixture{
		factory: p2.NewFactory(srv.Client(), pool, log, ""),
		pool:    pool,
		url:     srv.URL + "/main",
	}
}

func (f *resolveFixture) platform(t *testing.T, ee string) *domain.TargetPlatform {
	t.Helper()
	tp, err := f.factory.TargetPlatformFactory().CreateTargetPlatform(context.Background(), domain.TargetPlatformConfig{
		Repositories:              []domain.RepositoryRef{{ID: "main", URL: f.url}},
		ForceIgnoreLocalArtifacts: true,
	}, ee)
	require.NoError(t, err)
	return tp
}

func (f *resolveFixture) resolver(t *testing.T) *p2.Resolver {
	t.Helper()
	r, ok := f.factory.CreateResolver(nil).(*p2.Resolver)
	require.True(t, ok)
	return r.WithEnvironment(linux)
}

func entryIDs(entries []domain.ResolvedEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID + "_" + e.Version
	}
	return ids
}

func TestResolver_Closure(t *testing.T) {
	f := newResolveFixture(t)
	tp := f.platform(t, "JavaSE-1.7")

	r := f.resolver(t)
	require.NoError(t, r.AddDependency(domain.TypeEclipsePlugin, "org.example.app", ""))

	results, err := r.ResolveDependencies(context.Background(), tp)
	require.NoError(t, err)
	require.Len(t, results, 1)

	entries := results[0].Entries
	assert.Equal(t, []string{
		"org.example.app_1.0.0",
		"org.example.lib_1.5.0.v2024",
		"org.example.native.linux_1.0.0",
	}, entryIDs(entries))

	for _, e := range entries {
		assert.Equal(t, domain.TypeEclipsePlugin, e.Type)
		assert.Nil(t, e.Reactor)
		require.FileExists(t, e.Location)
		data, err := os.ReadFile(e.Location)
		require.NoError(t, err)
		assert.Equal(t, bundlePayload(e.ID, e.Version), data)
		assert.Equal(t, e.ID+"_"+e.Version+".jar", filepath.Base(e.Location))
		assert.True(t, filepath.IsAbs(e.Location))
	}
}

func TestResolver_FeatureSeedAndExactVersion(t *testing.T) {
	f := newResolveFixture(t)
	tp := f.platform(t, "JavaSE-1.7")

	r := f.resolver(t)
	require.NoError(t, r.AddDependency(domain.TypeEclipseFeature, "org.example.feature", ""))
	require.NoError(t, r.AddDependency(domain.TypeEclipsePlugin, "org.example.lib", "1.0.0"))

	results, err := r.ResolveDependencies(context.Background(), tp)
	require.NoError(t, err)

	entries := results[0].Entries
	assert.Equal(t, []string{
		"org.example.feature.feature.group_1.0.0",
		"org.example.lib_1.0.0",
		"org.example.app_1.0.0",
		"org.example.native.linux_1.0.0",
	}, entryIDs(entries), "already selected units satisfy later requirements")
	assert.Equal(t, domain.TypeEclipseFeature, entries[0].Type)
	assert.Empty(t, entries[0].Location)
}

func TestResolver_ExecutionEnvironmentTooOld(t *testing.T) {
	f := newResolveFixture(t)
	tp := f.platform(t, "J2SE-1.5")

	r := f.resolver(t)
	require.NoError(t, r.AddDependency(domain.TypeEclipsePlugin, "org.example.app", ""))

	_, err := r.ResolveDependencies(context.Background(), tp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsatisfiedRequirement)
	assert.ErrorContains(t, err, "osgi.ee")
	assert.ErrorContains(t, err, "required by org.example.app 1.0.0")
}

func TestResolver_UnknownExecutionEnvironment(t *testing.T) {
	f := newResolveFixture(t)
	tp := f.platform(t, "NotAJava-1.0")

	r := f.resolver(t)
	require.NoError(t, r.AddDependency(domain.TypeEclipsePlugin, "org.example.app", ""))

	_, err := r.ResolveDependencies(context.Background(), tp)
	assert.ErrorContains(t, err, domain.ErrUnknownExecutionEnvironment.Error())
}

func TestResolver_Unsatisfied(t *testing.T) {
	f := newResolveFixture(t)
	tp := f.platform(t, "JavaSE-1.7")

	r := f.resolver(t)
	require.NoError(t, r.AddDependency(domain.TypeEclipsePlugin, "org.example.nothere", ""))

	_, err := r.ResolveDependencies(context.Background(), tp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsatisfiedRequirement)
	assert.ErrorContains(t, err, "no unit provides osgi.bundle/org.example.nothere")
	assert.ErrorContains(t, err, "required by eclipse-plugin:org.example.nothere:")
}

func TestResolver_ChecksumMismatch(t *testing.T) {
	f := newResolveFixture(t, "org.example.lib")
	tp := f.platform(t, "JavaSE-1.7")

	r := f.resolver(t)
	require.NoError(t, r.AddDependency(domain.TypeEclipsePlugin, "org.example.app", ""))

	_, err := r.ResolveDependencies(context.Background(), tp)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrChecksumMismatch)
}

func TestResolver_AddDependencyValidation(t *testing.T) {
	r := p2.NewResolver(nil, quietLogger(t))

	tests := []struct {
		name    string
		typ     domain.ArtifactType
		id      string
		version string
		wantErr bool
	}{
		{"plugin best match", domain.TypeEclipsePlugin, "org.eclipse.osgi", "", false},
		{"fragment exact", domain.TypeEclipseFragment, "org.example.f", "1.0.0", false},
		{"iu range", domain.TypeInstallableUnit, "org.example.iu", "[1.0,2.0)", false},
		{"unknown type", domain.ArtifactType("jar"), "x", "", true},
		{"empty id", domain.TypeEclipsePlugin, "", "", true},
		{"space in id", domain.TypeEclipsePlugin, "a b", "", true},
		{"bad version", domain.TypeEclipsePlugin, "a", "one", true},
		{"bad range", domain.TypeEclipsePlugin, "a", "[1.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.AddDependency(tt.typ, tt.id, tt.version)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestFactory_ReactorAndLocalBundles(t *testing.T) {
	files := map[string][]byte{}
	addRepo(files, "/main", mainUnits())
	srv := serveRepo(t, files)
	log := quietLogger(t)

	local := t.TempDir()
	writeBundleJar(t, filepath.Join(local, "org.example.local_1.0.0.jar"),
		"Bundle-SymbolicName: org.example.local\nBundle-Version: 1.0.0\n")
	require.NoError(t, os.WriteFile(filepath.Join(local, "README.txt"), []byte("x"), 0o600))

	reactorDir := writeBundleDir(t, t.TempDir(),
		"Bundle-SymbolicName: org.example.lib\nBundle-Version: 2.1.0.SNAPSHOT\n")
	rp := &domain.ReactorProject{ID: "org.example.lib", Version: "2.1.0-SNAPSHOT", BaseDir: reactorDir}

	factory := p2.NewFactory(srv.Client(), nil, log, local)
	cfg := domain.TargetPlatformConfig{
		Repositories: []domain.RepositoryRef{{ID: "main", URL: srv.URL + "/main"}},
		Reactor:      []*domain.ReactorProject{rp},
	}

	tp, err := factory.CreateTargetPlatform(context.Background(), cfg, "JavaSE-1.8")
	require.NoError(t, err)
	assert.Equal(t, "JavaSE-1.8", tp.ExecutionEnvironment)
	assert.Equal(t, "org.example.lib", tp.Units[0].ID.String())
	assert.Same(t, rp, tp.Units[0].Reactor)
	assert.Equal(t, "org.example.local", tp.Units[len(tp.Units)-1].ID.String())

	cfg.ForceIgnoreLocalArtifacts = true
	tp, err = factory.CreateTargetPlatform(context.Background(), cfg, "JavaSE-1.8")
	require.NoError(t, err)
	for _, u := range tp.Units {
		assert.NotEqual(t, "org.example.local", u.ID.String())
	}

	r := p2.NewResolver(nil, log).WithEnvironment(linux)
	require.NoError(t, r.AddDependency(domain.TypeEclipsePlugin, "org.example.lib", ""))
	results, err := r.ResolveDependencies(context.Background(), tp)
	require.NoError(t, err)
	require.Len(t, results[0].Entries, 1)
	entry := results[0].Entries[0]
	assert.Equal(t, "2.1.0.SNAPSHOT", entry.Version)
	assert.Equal(t, reactorDir, entry.Location)
	assert.Same(t, rp, entry.Reactor)
}

func TestFactory_LocalBundlesDoNotRescueRemoteOnlyResolution(t *testing.T) {
	files := map[string][]byte{}
	addRepo(files, "/main", mainUnits())
	srv := serveRepo(t, files)
	log := quietLogger(t)

	local := t.TempDir()
	writeBundleJar(t, filepath.Join(local, "org.example.local_1.0.0.jar"),
		"Bundle-SymbolicName: org.example.local\nBundle-Version: 1.0.0\n")

	factory := p2.NewFactory(srv.Client(), nil, log, local)
	cfg := domain.TargetPlatformConfig{
		Repositories:              []domain.RepositoryRef{{ID: "main", URL: srv.URL + "/main"}},
		ForceIgnoreLocalArtifacts: true,
	}
	tp, err := factory.CreateTargetPlatform(context.Background(), cfg, "JavaSE-1.8")
	require.NoError(t, err)

	r := p2.NewResolver(nil, log).WithEnvironment(linux)
	require.NoError(t, r.AddDependency(domain.TypeEclipsePlugin, "org.example.local", ""))
	_, err = r.ResolveDependencies(context.Background(), tp)
	assert.ErrorIs(t, err, domain.ErrUnsatisfiedRequirement)
}

func TestFactory_ReactorClassifiedBundles(t *testing.T) {
	log := quietLogger(t)

	reactorDir := writeBundleDir(t, t.TempDir(),
		"Bundle-SymbolicName: org.example.lib\nBundle-Version: 2.1.0.SNAPSHOT\n")
	target := filepath.Join(reactorDir, "target")
	require.NoError(t, os.MkdirAll(target, 0o750))
	sources := writeBundleJar(t, filepath.Join(target, "lib-sources.jar"),
		"Bundle-SymbolicName: org.example.lib.source\nBundle-Version: 2.1.0.SNAPSHOT\n")
	docs := filepath.Join(target, "lib-docs.zip")
	require.NoError(t, os.WriteFile(docs, []byte("not a bundle"), 0o600))

	rp := &domain.ReactorProject{
		ID:        "org.example.lib",
		Version:   "2.1.0-SNAPSHOT",
		BaseDir:   reactorDir,
		Artifacts: map[string]string{"sources": "target/lib-sources.jar", "docs": docs},
	}

	factory := p2.NewFactory(nil, nil, log, "")
	tp, err := factory.CreateTargetPlatform(context.Background(),
		domain.TargetPlatformConfig{Reactor: []*domain.ReactorProject{rp}, ForceIgnoreLocalArtifacts: true}, "JavaSE-1.8")
	require.NoError(t, err)
	require.Len(t, tp.Units, 2)

	r := p2.NewResolver(nil, log).WithEnvironment(linux)
	require.NoError(t, r.AddDependency(domain.TypeEclipsePlugin, "org.example.lib", ""))
	require.NoError(t, r.AddDependency(domain.TypeEclipsePlugin, "org.example.lib.source", ""))
	results, err := r.ResolveDependencies(context.Background(), tp)
	require.NoError(t, err)

	entries := results[0].Entries
	require.Len(t, entries, 2)
	assert.Empty(t, entries[0].Classifier)
	assert.Equal(t, "sources", entries[1].Classifier)
	assert.Equal(t, sources, entries[1].Location)
	assert.Same(t, rp, entries[1].Reactor)
	assert.Equal(t, sources, rp.Artifact(entries[1].Classifier))
}
