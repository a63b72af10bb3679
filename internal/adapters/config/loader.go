// Package config loads eclipserun.yaml project files.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"go.trai.ch/eqrun/internal/adapters/p2" //nolint:depguard // manifest defaults
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	logger ports.Logger
}

var _ ports.ConfigLoader = (*FileConfigLoader)(nil)

// NewLoader creates a FileConfigLoader.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{logger: logger}
}

// Load implements ports.ConfigLoader.
func (l *FileConfigLoader) Load(path string) (*domain.Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, readError(err, path)
	}

	file, err := readProjectFile(abs)
	if err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(abs)
	project := &domain.Project{
		BaseDir:      baseDir,
		BuildDir:     resolvePath(baseDir, file.Project.BuildDir, domain.DefaultBuildDirName),
		ID:           file.Project.ID,
		Version:      file.Project.Version,
		Artifacts:    resolveArtifacts(baseDir, file.Project.Artifacts),
		Repositories: repositories(baseDir, file.Project.Repositories),
		ListDependencies: domain.ListDependenciesConfig{
			Skip: file.ListDependencies.Skip,
		},
	}
	l.applyManifestDefaults(project)

	for _, dir := range file.Project.Reactor {
		project.Reactor = append(project.Reactor, l.reactorProject(resolvePath(baseDir, dir, "")))
	}

	run := file.EclipseRun
	project.EclipseRun = domain.EclipseRunConfig{
		Work:                          resolvePath(baseDir, run.Work, ""),
		Repositories:                  repositories(baseDir, run.Repositories),
		AddDefaultDependencies:        run.AddDefaultDependencies == nil || *run.AddDefaultDependencies,
		ExecutionEnvironment:          run.ExecutionEnvironment,
		ArgLine:                       run.ArgLine,
		JvmArgs:                       run.JvmArgs,
		AppArgLine:                    run.AppArgLine,
		ApplicationsArgs:              run.ApplicationsArgs,
		ForkedProcessTimeoutInSeconds: run.ForkedProcessTimeoutInSeconds,
		EnvironmentVariables:          run.EnvironmentVariables,
		Skip:                          run.Skip,
	}
	if project.EclipseRun.Work == "" {
		project.EclipseRun.Work = project.EclipseRun.WorkDir(project.BuildDir)
	}
	if project.EclipseRun.ExecutionEnvironment == "" {
		project.EclipseRun.ExecutionEnvironment = domain.DefaultExecutionEnvironment
	}
	for _, d := range run.Dependencies {
		project.EclipseRun.Dependencies = append(project.EclipseRun.Dependencies, domain.DependencySeed{
			Type:       domain.ArtifactType(d.Type),
			ArtifactID: d.ArtifactID,
			Version:    d.Version,
		})
	}

	return project, nil
}

func readProjectFile(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, readError(err, path)
	}

	var file ProjectFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, zerr.With(errors.Join(domain.ErrConfiguration, domain.ErrConfigParseFailed, err), "path", path)
	}
	return &file, nil
}

func readError(err error, path string) error {
	return zerr.With(errors.Join(domain.ErrConfiguration, domain.ErrConfigReadFailed, err), "path", path)
}

// applyManifestDefaults fills id and version from META-INF/MANIFEST.MF when the file leaves them out.
func (l *FileConfigLoader) applyManifestDefaults(project *domain.Project) {
	if project.ID != "" && project.Version != "" {
		return
	}
	m, err := p2.ReadManifest(project.BaseDir)
	if err != nil {
		return
	}
	if project.ID == "" {
		project.ID = m.SymbolicName()
	}
	if project.Version == "" {
		project.Version = m["Bundle-Version"]
	}
}

// reactorProject describes another bundle of the same build. Its produced artifacts are
// taken from its own project file when it has one.
func (l *FileConfigLoader) reactorProject(dir string) *domain.ReactorProject {
	rp := &domain.ReactorProject{BaseDir: dir}

	if file, err := readProjectFile(filepath.Join(dir, domain.ProjectFileName)); err == nil {
		rp.ID = file.Project.ID
		rp.Version = file.Project.Version
		rp.Artifacts = resolveArtifacts(dir, file.Project.Artifacts)
	} else if !errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("Ignoring project file of reactor project " + dir)
	}

	if m, err := p2.ReadManifest(dir); err == nil {
		if rp.ID == "" {
			rp.ID = m.SymbolicName()
		}
		if rp.Version == "" {
			rp.Version = m["Bundle-Version"]
		}
	}
	return rp
}

func resolvePath(baseDir, p, fallback string) string {
	if p == "" {
		p = fallback
	}
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func resolveArtifacts(baseDir string, artifacts map[string]string) map[string]string {
	if len(artifacts) == 0 {
		return nil
	}
	out := make(map[string]string, len(artifacts))
	for classifier, p := range artifacts {
		out[classifier] = resolvePath(baseDir, p, "")
	}
	return out
}

// repositories resolves relative file system locations against baseDir. URLs are kept verbatim.
func repositories(baseDir string, dtos []RepositoryDTO) []domain.RepositoryRef {
	refs := make([]domain.RepositoryRef, 0, len(dtos))
	for _, r := range dtos {
		loc := r.URL
		if u, err := url.Parse(loc); err != nil || u.Scheme == "" {
			loc = resolvePath(baseDir, loc, "")
		}
		refs = append(refs, domain.RepositoryRef{ID: r.ID, URL: loc})
	}
	return refs
}
