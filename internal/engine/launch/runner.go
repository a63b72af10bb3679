package launch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner executes the eclipse-run pipeline: resolve, materialize, launch.
// A Runner is shared; every invocation tracks its own Execution.
type Runner struct {
	factory       ports.ResolverFactory
	installations ports.InstallationFactory
	launcher      ports.Launcher
	toolchains    ports.ToolchainProvider
	tracer        ports.Tracer
	logger        ports.Logger
}

// NewRunner creates a Runner.
func NewRunner(
	factory ports.ResolverFactory,
	installations ports.InstallationFactory,
	launcher ports.Launcher,
	toolchains ports.ToolchainProvider,
	tracer ports.Tracer,
	logger ports.Logger,
) *Runner {
	return &Runner{
		factory:       factory,
		installations: installations,
		launcher:      launcher,
		toolchains:    toolchains,
		tracer:        tracer,
		logger:        logger,
	}
}

// WithToolchains returns a copy of r using toolchains.
func (r *Runner) WithToolchains(toolchains ports.ToolchainProvider) *Runner {
	return NewRunner(r.factory, r.installations, r.launcher, toolchains, r.tracer, r.logger)
}

// Execution is the lifecycle of one invocation.
type Execution struct {
	ID string

	logger ports.Logger
	mu     sync.Mutex
	state  domain.RunState
}

func newExecution(logger ports.Logger) *Execution {
	return &Execution{ID: uuid.NewString(), logger: logger, state: domain.RunStateIdle}
}

// State returns the state the invocation reached.
func (e *Execution) State() domain.RunState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Execution) transition(next domain.RunState) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.CanTransition(next) {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrInternal, "illegal state transition"),
			"from", string(e.state)), "to", string(next))
	}
	e.logger.Debug("state " + string(e.state) + " -> " + string(next))
	e.state = next
	return nil
}

func (e *Execution) fail(err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.IsTerminal() {
		e.state = domain.RunStateFailed
	}
	return err
}

// Run provisions and launches the runtime described by cfg for project.
func (r *Runner) Run(ctx context.Context, cfg domain.EclipseRunConfig, project *domain.Project) error {
	_, err := r.Execute(ctx, cfg, project)
	return err
}

// Execute is Run returning the invocation's Execution, which is never nil.
func (r *Runner) Execute(ctx context.Context, cfg domain.EclipseRunConfig, project *domain.Project) (*Execution, error) {
	e := newExecution(r.logger)
	if cfg.Skip {
		r.logger.Debug("skipping execution")
		return e, nil
	}

	ctx, span := r.tracer.Start(ctx, "eqrun.run", ports.WithAttribute("run_id", e.ID))
	defer span.End()

	if err := r.run(ctx, e, cfg, project); err != nil {
		span.RecordError(err)
		return e, e.fail(err)
	}
	return e, e.transition(domain.RunStateDone)
}

func (r *Runner) run(ctx context.Context, e *Execution, cfg domain.EclipseRunConfig, project *domain.Project) error {
	if err := e.transition(domain.RunStateResolving); err != nil {
		return err
	}
	desc, err := r.resolve(ctx, e.ID, cfg)
	if err != nil {
		return err
	}

	if err := e.transition(domain.RunStateAssembling); err != nil {
		return err
	}
	workDir := cfg.WorkDir(project.BuildDir)
	installation, err := r.assemble(ctx, e.ID, desc, workDir)
	if err != nil {
		return err
	}
	if err := e.transition(domain.RunStateMaterialized); err != nil {
		return err
	}

	if err := e.transition(domain.RunStateLaunching); err != nil {
		return err
	}
	return r.launch(ctx, e.ID, cfg, project, installation, workDir)
}

func (r *Runner) resolve(ctx context.Context, runID string, cfg domain.EclipseRunConfig) (*domain.InstallationDescription, error) {
	ctx, span := r.tracer.Start(ctx, "eqrun.resolve",
		ports.WithAttribute("run_id", runID),
		ports.WithAttribute("execution_environment", cfg.EE()))
	defer span.End()

	req, err := BuildRequest(cfg, r.factory, r.logger)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	desc, err := NewAssembler(r.factory).Assemble(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("bundles", desc.Len())
	return desc, nil
}

func (r *Runner) assemble(
	ctx context.Context,
	runID string,
	desc *domain.InstallationDescription,
	workDir string,
) (*domain.Installation, error) {
	ctx, span := r.tracer.Start(ctx, "eqrun.assemble",
		ports.WithAttribute("run_id", runID),
		ports.WithAttribute("work_dir", workDir))
	defer span.End()

	bundles := make([]string, 0, desc.Len())
	for _, b := range desc.Bundles() {
		bundles = append(bundles, b.Key.ID.String()+"_"+b.Key.Version)
	}
	r.tracer.EmitPlan(ctx, bundles)

	installation, err := r.installations.CreateInstallation(ctx, desc, workDir)
	if err != nil {
		err = errors.Join(domain.ErrInstallationFailed, err)
		span.RecordError(err)
		return nil, err
	}
	return installation, nil
}

func (r *Runner) launch(
	ctx context.Context,
	runID string,
	cfg domain.EclipseRunConfig,
	project *domain.Project,
	installation *domain.Installation,
	workDir string,
) error {
	ctx, span := r.tracer.Start(ctx, "eqrun.launch", ports.WithAttribute("run_id", runID))
	defer span.End()

	err := r.execute(ctx, span, cfg, project, installation, workDir)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (r *Runner) execute(
	ctx context.Context,
	span ports.Span,
	cfg domain.EclipseRunConfig,
	project *domain.Project,
	installation *domain.Installation,
	workDir string,
) error {
	absWork, err := filepath.Abs(workDir)
	if err != nil {
		return errors.Join(domain.ErrLaunchFailed, err)
	}
	workspace := filepath.Join(absWork, domain.WorkspaceDirName)
	if err := os.RemoveAll(workspace); err != nil {
		return errors.Join(domain.ErrLaunchFailed, zerr.With(zerr.Wrap(err, "failed to reset workspace"), "path", workspace))
	}

	plan, err := BuildPlan(cfg, project, installation, r.toolchains, r.logger)
	if err != nil {
		return err
	}
	r.logger.Info("Expected eclipse log file: " + filepath.Join(canonical(absWork), domain.WorkspaceDirName, ".metadata", ".log"))

	code, err := r.launcher.Execute(ctx, plan, cfg.ForkedProcessTimeoutInSeconds)
	span.SetAttribute("exit_code", code)
	if err != nil {
		if errors.Is(err, domain.ErrLaunchTimeout) {
			return err
		}
		return errors.Join(domain.ErrLaunchFailed, err)
	}
	if code != 0 {
		return &domain.ExitError{Code: code}
	}
	return nil
}

// canonical resolves symlinks of an existing path.
func canonical(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}
