package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/eqrun/internal/adapters/telemetry"
	"go.trai.ch/eqrun/internal/adapters/toolchain"
	"go.trai.ch/eqrun/internal/app"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/eqrun/internal/core/ports/mocks"
	"go.trai.ch/eqrun/internal/engine/launch"
	"go.trai.ch/eqrun/internal/engine/listing"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader        *mocks.MockConfigLoader
	factory       *mocks.MockResolverFactory
	tpFactory     *mocks.MockTargetPlatformFactory
	resolver      *mocks.MockResolver
	installations *mocks.MockInstallationFactory
	launcher      *mocks.MockLauncher
	toolchains    *mocks.MockToolchainProvider
	artifacts     *mocks.MockDependencyArtifacts
	logger        *mocks.MockLogger
	project       *domain.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	base := t.TempDir()
	f := &fixture{
		loader:        mocks.NewMockConfigLoader(ctrl),
		factory:       mocks.NewMockResolverFactory(ctrl),
		tpFactory:     mocks.NewMockTargetPlatformFactory(ctrl),
		resolver:      mocks.NewMockResolver(ctrl),
		installations: mocks.NewMockInstallationFactory(ctrl),
		launcher:      mocks.NewMockLauncher(ctrl),
		toolchains:    mocks.NewMockToolchainProvider(ctrl),
		artifacts:     mocks.NewMockDependencyArtifacts(ctrl),
		logger:        mocks.NewMockLogger(ctrl),
		project: &domain.Project{
			BaseDir:  base,
			BuildDir: filepath.Join(base, "target"),
			ID:       "org.example.app",
			EclipseRun: domain.EclipseRunConfig{
				Repositories: []domain.RepositoryRef{{ID: "r", URL: "https://download.example.org/p2"}},
			},
		},
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.toolchains.EXPECT().FindMatchingJavaToolchain(gomock.Any()).Return(nil, nil).AnyTimes()
	return f
}

func (f *fixture) app(toolchains ports.ToolchainProvider) *app.App {
	runner := launch.NewRunner(f.factory, f.installations, f.launcher, toolchains,
		telemetry.NewNoOpTracer(), f.logger)
	return app.New(f.loader, runner, listing.NewLister(f.artifacts, f.logger), toolchains, f.logger)
}

func (f *fixture) expectPipeline() {
	f.factory.EXPECT().CreateResolver(gomock.Any()).Return(f.resolver)
	f.factory.EXPECT().TargetPlatformFactory().Return(f.tpFactory)
	f.tpFactory.EXPECT().CreateTargetPlatform(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.TargetPlatform{}, nil)
	f.resolver.EXPECT().ResolveDependencies(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.installations.EXPECT().CreateInstallation(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *domain.InstallationDescription, workDir string) (*domain.Installation, error) {
			return &domain.Installation{Location: workDir, LauncherJar: "/pool/launcher.jar"}, nil
		})
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
}

func TestApp_Run_DefaultProjectFile(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(domain.ProjectFileName).Return(f.project, nil)
	f.expectPipeline()
	f.launcher.EXPECT().Execute(gomock.Any(), gomock.Any(), 0).Return(0, nil)

	require.NoError(t, f.app(f.toolchains).Run(context.Background(), app.RunOptions{}))
}

func TestApp_Run_Overrides(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("sub/eclipserun.yaml").Return(f.project, nil)
	f.expectPipeline()

	work := filepath.Join(t.TempDir(), "override")
	timeout := 7
	f.launcher.EXPECT().Execute(gomock.Any(), gomock.Any(), 7).
		DoAndReturn(func(_ context.Context, plan *domain.LaunchPlan, _ int) (int, error) {
			assert.Equal(t, []string{"-install", work, "-configuration", filepath.Join(work, domain.ConfigurationDirName)},
				plan.ProgramArgs)
			return 0, nil
		})

	err := f.app(f.toolchains).Run(context.Background(), app.RunOptions{
		ProjectFile: "sub/eclipserun.yaml",
		Timeout:     &timeout,
		Work:        work,
	})
	require.NoError(t, err)
}

func TestApp_Run_SkipOverride(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.app(f.toolchains).Run(context.Background(), app.RunOptions{Skip: true}))

	_, err := os.Stat(f.project.BuildDir)
	assert.True(t, os.IsNotExist(err))
}

func TestApp_Run_LoadFailure(t *testing.T) {
	f := newFixture(t)
	loadErr := errors.Join(domain.ErrConfiguration, domain.ErrConfigReadFailed)
	f.loader.EXPECT().Load(gomock.Any()).Return(nil, loadErr)

	err := f.app(f.toolchains).Run(context.Background(), app.RunOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Run_ToolchainsFile(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any()).Return(f.project, nil)
	f.expectPipeline()

	jdk := t.TempDir()
	java := filepath.Join(jdk, "bin", "java")
	if runtime.GOOS == "windows" {
		java += ".exe"
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(java), 0o750))
	require.NoError(t, os.WriteFile(java, []byte("#!/bin/sh\n"), 0o700))

	registry := filepath.Join(t.TempDir(), "toolchains.yaml")
	require.NoError(t, os.WriteFile(registry, []byte(`
toolchains:
  - type: jdk
    provides: {id: JavaSE-1.7}
    configuration: {jdkHome: `+jdk+`}
`), 0o600))

	f.launcher.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, plan *domain.LaunchPlan, _ int) (int, error) {
			require.NotNil(t, plan.JvmExecutable)
			assert.Equal(t, java, *plan.JvmExecutable)
			return 0, nil
		})

	defaults := toolchain.NewProvider(filepath.Join(t.TempDir(), "missing.yaml"))
	err := f.app(defaults).Run(context.Background(), app.RunOptions{ToolchainsFile: registry})
	require.NoError(t, err)
}

func TestApp_Run_ToolchainsFileUnsupported(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any()).Return(f.project, nil)

	err := f.app(f.toolchains).Run(context.Background(), app.RunOptions{ToolchainsFile: "/etc/toolchains.yaml"})
	assert.ErrorIs(t, err, domain.ErrInternal)
}

func TestApp_ListDependencies(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(domain.ProjectFileName).Return(f.project, nil)
	f.artifacts.EXPECT().Collect(gomock.Any(), f.project).Return([]domain.ArtifactDescriptor{
		{Location: f.project.BaseDir},
		{Location: "/libs/x.jar"},
	}, nil)

	require.NoError(t, f.app(f.toolchains).ListDependencies(context.Background(), app.ListOptions{}))

	data, err := os.ReadFile(filepath.Join(f.project.BuildDir, domain.DependencyListFileName))
	require.NoError(t, err)
	assert.Equal(t, "/libs/x.jar\n", string(data))
}

func TestApp_ListDependencies_SkipOverride(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info("Skipped")

	require.NoError(t, f.app(f.toolchains).ListDependencies(context.Background(), app.ListOptions{Skip: true}))
}

func TestApp_SkipIgnoresBrokenProjectFile(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info("Skipped")

	a := f.app(f.toolchains)
	require.NoError(t, a.Run(context.Background(), app.RunOptions{ProjectFile: "missing.yaml", Skip: true}))
	require.NoError(t, a.ListDependencies(context.Background(), app.ListOptions{ProjectFile: "missing.yaml", Skip: true}))
}
