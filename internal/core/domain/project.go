package domain

import "path/filepath"

// ReactorProject is another project of the same build whose output can replace a resolved artifact.
type ReactorProject struct {
	ID      string
	Version string
	BaseDir string

	// Artifacts maps a classifier to the produced file. The empty classifier is the main artifact.
	Artifacts map[string]string
}

// Artifact returns the produced artifact for classifier as an absolute path.
// It falls back to the base directory when the project has not produced that artifact.
func (r *ReactorProject) Artifact(classifier string) string {
	if p, ok := r.Artifacts[classifier]; ok && p != "" {
		return absPath(r.BaseDir, p)
	}
	return absPath("", r.BaseDir)
}

func absPath(base, p string) string {
	if !filepath.IsAbs(p) && base != "" {
		p = filepath.Join(base, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

// Project is the build project an operation acts on.
type Project struct {
	BaseDir  string
	BuildDir string
	ID       string
	Version  string

	// Artifacts maps a classifier to the file this project produces.
	Artifacts map[string]string

	Repositories []RepositoryRef
	Reactor      []*ReactorProject

	EclipseRun       EclipseRunConfig
	ListDependencies ListDependenciesConfig
}

// AsReactorProject exposes p as a member of its own reactor.
func (p *Project) AsReactorProject() *ReactorProject {
	return &ReactorProject{
		ID:        p.ID,
		Version:   p.Version,
		BaseDir:   p.BaseDir,
		Artifacts: p.Artifacts,
	}
}

// EclipseRunConfig is the configuration of the eclipse-run operation.
type EclipseRunConfig struct {
	Work                   string
	Repositories           []RepositoryRef
	Dependencies           []DependencySeed
	AddDefaultDependencies bool
	ExecutionEnvironment   string

	// Deprecated: use JvmArgs.
	ArgLine string
	JvmArgs []string

	// Deprecated: use ApplicationsArgs.
	AppArgLine       string
	ApplicationsArgs []string

	ForkedProcessTimeoutInSeconds int
	EnvironmentVariables          map[string]string
	Skip                          bool
}

// WorkDir returns the configured work directory or its default under buildDir.
func (c EclipseRunConfig) WorkDir(buildDir string) string {
	if c.Work != "" {
		return c.Work
	}
	return filepath.Join(buildDir, WorkDirName)
}

// EE returns the execution environment, falling back to the default.
func (c EclipseRunConfig) EE() string {
	if c.ExecutionEnvironment != "" {
		return c.ExecutionEnvironment
	}
	return DefaultExecutionEnvironment
}

// ListDependenciesConfig is the configuration of the list-dependencies operation.
type ListDependenciesConfig struct {
	Skip bool
}

// Toolchain is a JDK installation registered for an execution environment.
type Toolchain struct {
	Type    string
	ID      string
	Version string
	JdkHome string
}

func (t *Toolchain) String() string {
	return "JDK[" + t.JdkHome + "]"
}
