// Package listing writes the resolved bundle closure of a project to its build directory.
package listing

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// Lister writes dependencies-list.txt.
type Lister struct {
	artifacts ports.DependencyArtifacts
	logger    ports.Logger
}

// NewLister creates a Lister.
func NewLister(artifacts ports.DependencyArtifacts, logger ports.Logger) *Lister {
	return &Lister{artifacts: artifacts, logger: logger}
}

// WriteDependencyList writes one absolute path per resolved artifact of project,
// in resolver order, excluding the project itself.
// The file is truncated before the artifacts are collected.
func (l *Lister) WriteDependencyList(ctx context.Context, project *domain.Project) error {
	if project.ListDependencies.Skip {
		l.logger.Info("Skipped")
		return nil
	}

	target := filepath.Join(project.BuildDir, domain.DependencyListFileName)
	if err := os.MkdirAll(project.BuildDir, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrDependencyListCreate, err), "path", target)
	}
	f, err := os.Create(target)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrDependencyListCreate, err), "path", target)
	}
	defer func() { _ = f.Close() }()

	artifacts, err := l.artifacts.Collect(ctx, project)
	if err != nil {
		return err
	}

	self := normalize(project.BaseDir)
	w := bufio.NewWriter(f)
	written := 0
	for _, a := range artifacts {
		if normalize(a.Location) == self {
			continue
		}
		if _, err := w.WriteString(location(a) + "\n"); err != nil {
			return zerr.With(errors.Join(domain.ErrDependencyListWrite, err), "path", target)
		}
		written++
	}
	if err := w.Flush(); err != nil {
		return zerr.With(errors.Join(domain.ErrDependencyListWrite, err), "path", target)
	}
	if err := f.Close(); err != nil {
		return zerr.With(errors.Join(domain.ErrDependencyListWrite, err), "path", target)
	}

	l.logger.Debug("wrote " + humanize.Comma(int64(written)) + " dependencies to " + target)
	return nil
}

func location(a domain.ArtifactDescriptor) string {
	if a.Reactor != nil {
		return a.Reactor.Artifact(a.Classifier)
	}
	if abs, err := filepath.Abs(a.Location); err == nil {
		return abs
	}
	return a.Location
}

// normalize makes paths comparable: absolute, cleaned and with symlinks resolved when the path exists.
func normalize(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
