package launch

import (
	"errors"
	"path/filepath"

	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// BuildPlan assembles the command line of the forked platform.
func BuildPlan(
	cfg domain.EclipseRunConfig,
	project *domain.Project,
	installation *domain.Installation,
	toolchains ports.ToolchainProvider,
	logger ports.Logger,
) (*domain.LaunchPlan, error) {
	plan := &domain.LaunchPlan{
		WorkingDir:  project.BaseDir,
		Environment: cfg.EnvironmentVariables,
		LauncherJar: installation.LauncherJar,
	}

	tc, err := toolchains.FindMatchingJavaToolchain(cfg.EE())
	if err != nil {
		return nil, errors.Join(domain.ErrConfiguration, err)
	}
	if tc != nil {
		logger.Info("Toolchain in eqrun: " + tc.String())
		if java := toolchains.FindTool(tc, "java"); java != "" {
			plan.JvmExecutable = &java
		}
	}

	vmArgs, err := splitArgLine(cfg.ArgLine)
	if err != nil {
		return nil, errors.Join(domain.ErrConfiguration, err)
	}
	plan.VMArgs = append(vmArgs, cfg.JvmArgs...)

	installArea, err := filepath.Abs(installation.Location)
	if err != nil {
		return nil, zerr.Wrap(err, "invalid installation location")
	}
	configArea, err := filepath.Abs(filepath.Join(cfg.WorkDir(project.BuildDir), domain.ConfigurationDirName))
	if err != nil {
		return nil, zerr.Wrap(err, "invalid work directory")
	}
	plan.ProgramArgs = []string{"-install", installArea, "-configuration", configArea}

	appArgs, err := splitArgLine(cfg.AppArgLine)
	if err != nil {
		return nil, errors.Join(domain.ErrConfiguration, err)
	}
	plan.ProgramArgs = append(plan.ProgramArgs, appArgs...)

	for _, arg := range cfg.ApplicationsArgs {
		split, err := splitArgLine(arg)
		if err != nil {
			return nil, errors.Join(domain.ErrConfiguration, err)
		}
		plan.ProgramArgs = append(plan.ProgramArgs, split...)
	}

	return plan, nil
}
