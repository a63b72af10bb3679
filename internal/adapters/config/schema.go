package config

// ProjectFile represents the structure of the eclipserun.yaml project file.
type ProjectFile struct {
	Project          ProjectDTO          `yaml:"project"`
	ListDependencies ListDependenciesDTO `yaml:"listDependencies"`
	EclipseRun       EclipseRunDTO       `yaml:"eclipseRun"`
}

// ProjectDTO describes the project itself.
type ProjectDTO struct {
	ID           string            `yaml:"id"`
	Version      string            `yaml:"version"`
	BuildDir     string            `yaml:"buildDir"`
	Artifacts    map[string]string `yaml:"artifacts"`
	Repositories []RepositoryDTO   `yaml:"repositories"`
	Reactor      []string          `yaml:"reactor"`
}

// RepositoryDTO is a p2 repository reference.
type RepositoryDTO struct {
	ID  string `yaml:"id"`
	URL string `yaml:"url"`
}

// DependencyDTO is a root dependency of eclipse-run.
type DependencyDTO struct {
	Type       string `yaml:"type"`
	ArtifactID string `yaml:"artifactId"`
	Version    string `yaml:"version"`
}

// ListDependenciesDTO configures list-dependencies.
type ListDependenciesDTO struct {
	Skip bool `yaml:"skip"`
}

// EclipseRunDTO configures eclipse-run.
type EclipseRunDTO struct {
	Work                          string            `yaml:"work"`
	Repositories                  []RepositoryDTO   `yaml:"repositories"`
	Dependencies                  []DependencyDTO   `yaml:"dependencies"`
	AddDefaultDependencies        *bool             `yaml:"addDefaultDependencies"`
	ExecutionEnvironment          string            `yaml:"executionEnvironment"`
	ArgLine                       string            `yaml:"argLine"`
	JvmArgs                       []string          `yaml:"jvmArgs"`
	AppArgLine                    string            `yaml:"appArgLine"`
	ApplicationsArgs              []string          `yaml:"applicationsArgs"`
	ForkedProcessTimeoutInSeconds int               `yaml:"forkedProcessTimeoutInSeconds"`
	EnvironmentVariables          map[string]string `yaml:"environmentVariables"`
	Skip                          bool              `yaml:"skip"`
}
