package launch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports/mocks"
	"go.trai.ch/eqrun/internal/engine/launch"
	"go.uber.org/mock/gomock"
)

func TestAssembler_KeepsOnlyPlugins(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockResolverFactory(ctrl)
	tpFactory := mocks.NewMockTargetPlatformFactory(ctrl)
	resolver := mocks.NewMockResolver(ctrl)

	req := &launch.Request{
		Platform:             domain.TargetPlatformConfig{Repositories: testRepos, ForceIgnoreLocalArtifacts: true},
		ExecutionEnvironment: "JavaSE-11",
		Resolver:             resolver,
	}
	tp := &domain.TargetPlatform{}

	factory.EXPECT().TargetPlatformFactory().Return(tpFactory)
	tpFactory.EXPECT().CreateTargetPlatform(gomock.Any(), req.Platform, "JavaSE-11").Return(tp, nil)
	resolver.EXPECT().ResolveDependencies(gomock.Any(), tp).Return([]domain.ResolutionResult{{
		Entries: []domain.ResolvedEntry{
			{Type: domain.TypeEclipsePlugin, ID: "org.eclipse.osgi", Version: "3.20.0", Location: "/pool/osgi.jar"},
			{Type: domain.TypeEclipseFeature, ID: "org.example.feature", Version: "1.0.0", Location: "/pool/feature.jar"},
			{Type: domain.TypeEclipseFragment, ID: "org.example.fragment", Version: "1.0.0", Location: "/pool/frag.jar"},
			{Type: domain.TypeInstallableUnit, ID: "org.example.category", Version: "1.0.0"},
			{Type: domain.TypeEclipsePlugin, ID: "org.eclipse.equinox.launcher", Version: "1.6.0", Location: "/pool/launcher.jar"},
		},
	}}, nil)

	desc, err := launch.NewAssembler(factory).Assemble(context.Background(), req)
	require.NoError(t, err)

	bundles := desc.Bundles()
	require.Len(t, bundles, 2)
	assert.Equal(t, "org.eclipse.osgi", bundles[0].Key.ID.String())
	assert.Equal(t, "/pool/osgi.jar", bundles[0].Location)
	assert.Equal(t, "org.eclipse.equinox.launcher", bundles[1].Key.ID.String())
	assert.Equal(t, "1.6.0", bundles[1].Key.Version)
}

func TestAssembler_TargetPlatformFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockResolverFactory(ctrl)
	tpFactory := mocks.NewMockTargetPlatformFactory(ctrl)
	resolver := mocks.NewMockResolver(ctrl)

	loadErr := errors.New("repository unreachable")
	factory.EXPECT().TargetPlatformFactory().Return(tpFactory)
	tpFactory.EXPECT().CreateTargetPlatform(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, loadErr)

	_, err := launch.NewAssembler(factory).Assemble(context.Background(), &launch.Request{Resolver: resolver})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrResolutionFailed)
	assert.ErrorIs(t, err, loadErr)
}

func TestAssembler_ResolveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	factory := mocks.NewMockResolverFactory(ctrl)
	tpFactory := mocks.NewMockTargetPlatformFactory(ctrl)
	resolver := mocks.NewMockResolver(ctrl)

	factory.EXPECT().TargetPlatformFactory().Return(tpFactory)
	tpFactory.EXPECT().CreateTargetPlatform(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.TargetPlatform{}, nil)
	resolver.EXPECT().ResolveDependencies(gomock.Any(), gomock.Any()).Return(nil, domain.ErrUnsatisfiedRequirement)

	_, err := launch.NewAssembler(factory).Assemble(context.Background(), &launch.Request{Resolver: resolver})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrResolutionFailed)
	assert.ErrorIs(t, err, domain.ErrUnsatisfiedRequirement)
}
