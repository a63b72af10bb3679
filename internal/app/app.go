// Package app implements the application layer for eqrun.
package app

import (
	"context"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel"
	"go.trai.ch/eqrun/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/eqrun/internal/engine/launch"
	"go.trai.ch/eqrun/internal/engine/listing"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       *launch.Runner
	lister       *listing.Lister
	toolchains   ports.ToolchainProvider
	logger       ports.Logger

	otelOnce sync.Once
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner *launch.Runner,
	lister *listing.Lister,
	toolchains ports.ToolchainProvider,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		lister:       lister,
		toolchains:   toolchains,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ProjectFile defaults to eclipserun.yaml in the working directory.
	ProjectFile string
	// Skip returns before the project file is read.
	Skip bool
	// Timeout overrides forkedProcessTimeoutInSeconds when set.
	Timeout *int
	// Work overrides the work directory. Relative paths resolve against the working directory.
	Work string
	// ToolchainsFile replaces the default toolchain registry.
	ToolchainsFile string
}

// fileScoped is implemented by toolchain providers that can be pointed at another registry file.
type fileScoped interface {
	WithFile(path string) ports.ToolchainProvider
}

// Run provisions and launches the Equinox runtime configured in the project file.
// A skip override returns before the project file is read.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if opts.Skip {
		a.logger.Debug("skipping execution")
		return nil
	}

	project, err := a.load(opts.ProjectFile)
	if err != nil {
		return err
	}

	cfg := project.EclipseRun
	if opts.Timeout != nil {
		cfg.ForkedProcessTimeoutInSeconds = *opts.Timeout
	}
	if opts.Work != "" {
		work, err := filepath.Abs(opts.Work)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "invalid work directory"), "work", opts.Work)
		}
		cfg.Work = work
	}

	runner := a.runner
	if opts.ToolchainsFile != "" {
		scoped, ok := a.toolchains.(fileScoped)
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrInternal, "toolchain provider cannot switch files"),
				"toolchains", opts.ToolchainsFile)
		}
		runner = runner.WithToolchains(scoped.WithFile(opts.ToolchainsFile))
	}

	a.setupOTel()
	return runner.Run(ctx, cfg, project)
}

// ListOptions configuration for the ListDependencies method.
type ListOptions struct {
	ProjectFile string
	Skip        bool
}

// ListDependencies writes the project's resolved bundle closure to its build directory.
func (a *App) ListDependencies(ctx context.Context, opts ListOptions) error {
	if opts.Skip {
		a.logger.Info("Skipped")
		return nil
	}

	project, err := a.load(opts.ProjectFile)
	if err != nil {
		return err
	}
	return a.lister.WriteDependencyList(ctx, project)
}

func (a *App) load(path string) (*domain.Project, error) {
	if path == "" {
		path = domain.ProjectFileName
	}
	project, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

// setupOTel registers an SDK tracer provider that reports pipeline spans to the logger.
func (a *App) setupOTel() {
	a.otelOnce.Do(func() {
		otel.SetTracerProvider(telemetry.NewProvider(telemetry.NewBridge(a.logger)))
	})
}
