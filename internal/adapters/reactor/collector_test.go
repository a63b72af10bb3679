package reactor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/eqrun/internal/adapters/reactor"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type collectorMocks struct {
	factory  *mocks.MockResolverFactory
	platform *mocks.MockTargetPlatformFactory
	resolver *mocks.MockResolver
	logger   *mocks.MockLogger
}

func newCollectorMocks(t *testing.T) *collectorMocks {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &collectorMocks{
		factory:  mocks.NewMockResolverFactory(ctrl),
		platform: mocks.NewMockTargetPlatformFactory(ctrl),
		resolver: mocks.NewMockResolver(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	m.factory.EXPECT().TargetPlatformFactory().Return(m.platform).AnyTimes()
	m.factory.EXPECT().CreateResolver(m.logger).Return(m.resolver).AnyTimes()
	return m
}

func TestCollector_Collect(t *testing.T) {
	m := newCollectorMocks(t)

	other := &domain.ReactorProject{ID: "com.example.other", BaseDir: "/ws/other"}
	project := &domain.Project{
		BaseDir:      "/ws/self",
		ID:           "com.example.self",
		Version:      "1.0.0",
		Repositories: []domain.RepositoryRef{{ID: "r", URL: "https://e/p2"}},
		Reactor:      []*domain.ReactorProject{other},
		EclipseRun:   domain.EclipseRunConfig{ExecutionEnvironment: "JavaSE-11"},
	}

	var self *domain.ReactorProject
	m.platform.EXPECT().
		CreateTargetPlatform(gomock.Any(), gomock.Any(), "JavaSE-11").
		DoAndReturn(func(_ context.Context, cfg domain.TargetPlatformConfig, _ string) (*domain.TargetPlatform, error) {
			assert.False(t, cfg.ForceIgnoreLocalArtifacts)
			assert.Equal(t, project.Repositories, cfg.Repositories)
			require.Len(t, cfg.Reactor, 2)
			self = cfg.Reactor[0]
			assert.Equal(t, "/ws/self", self.BaseDir)
			assert.Same(t, other, cfg.Reactor[1])
			return &domain.TargetPlatform{Units: []*domain.InstallableUnit{
				{ID: domain.NewInternedString("com.example.self"), Version: domain.MustParseVersion("1.0.0.qualifier"), Reactor: self},
			}}, nil
		})
	m.resolver.EXPECT().AddDependency(domain.TypeEclipsePlugin, "com.example.self", "1.0.0.qualifier").Return(nil)
	m.resolver.EXPECT().ResolveDependencies(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *domain.TargetPlatform) ([]domain.ResolutionResult, error) {
			return []domain.ResolutionResult{{Entries: []domain.ResolvedEntry{
				{Type: domain.TypeEclipsePlugin, ID: "com.example.self", Version: "1.0.0.qualifier", Location: "/ws/self", Reactor: self},
				{Type: domain.TypeEclipseFeature, ID: "f.feature.group", Version: "1.0.0"},
				{Type: domain.TypeEclipsePlugin, ID: "com.example.other", Version: "2.0.0", Location: "/ws/other/", Reactor: other},
				{Type: domain.TypeEclipseFragment, ID: "frag", Version: "1.0.0", Location: "/pool/frag.jar"},
				{Type: domain.TypeInstallableUnit, ID: "cat", Version: "1.0.0"},
			}}}, nil
		})

	artifacts, err := reactor.NewCollector(m.factory, m.logger).Collect(context.Background(), project)
	require.NoError(t, err)

	require.Len(t, artifacts, 3)
	assert.Equal(t, "/ws/self", artifacts[0].Location)
	assert.Same(t, self, artifacts[0].Reactor)
	assert.Equal(t, "/ws/other", artifacts[1].Location)
	assert.Same(t, other, artifacts[1].Reactor)
	assert.Equal(t, "/pool/frag.jar", artifacts[2].Location)
	assert.Equal(t, domain.TypeEclipseFragment, artifacts[2].Key.Type)
	assert.Nil(t, artifacts[2].Reactor)
}

func TestCollector_ResolutionFailure(t *testing.T) {
	m := newCollectorMocks(t)
	project := &domain.Project{BaseDir: "/ws/self", ID: "com.example.self"}

	m.platform.EXPECT().CreateTargetPlatform(gomock.Any(), gomock.Any(), domain.DefaultExecutionEnvironment).
		Return(&domain.TargetPlatform{}, nil)
	m.resolver.EXPECT().AddDependency(domain.TypeEclipsePlugin, "com.example.self", "").Return(nil)
	m.resolver.EXPECT().ResolveDependencies(gomock.Any(), gomock.Any()).
		Return(nil, zerr.Wrap(domain.ErrUnsatisfiedRequirement, "no unit provides the requirement"))

	_, err := reactor.NewCollector(m.factory, m.logger).Collect(context.Background(), project)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrResolutionFailed)
	assert.ErrorIs(t, err, domain.ErrUnsatisfiedRequirement)
}

func TestCollector_TargetPlatformFailure(t *testing.T) {
	m := newCollectorMocks(t)
	project := &domain.Project{BaseDir: "/ws/self", ID: "com.example.self"}

	m.platform.EXPECT().CreateTargetPlatform(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrRepositoryLoadFailed)

	_, err := reactor.NewCollector(m.factory, m.logger).Collect(context.Background(), project)
	assert.ErrorIs(t, err, domain.ErrResolutionFailed)
	assert.ErrorIs(t, err, domain.ErrRepositoryLoadFailed)
}
