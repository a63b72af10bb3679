// Package toolchain matches JDK installations to execution environments.
package toolchain

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// TypeJDK is the only toolchain type considered for launching.
const TypeJDK = "jdk"

type toolchainsFile struct {
	Toolchains []toolchainEntry `yaml:"toolchains"`
}

type toolchainEntry struct {
	Type     string `yaml:"type"`
	Provides struct {
		ID      string `yaml:"id"`
		Version string `yaml:"version"`
	} `yaml:"provides"`
	Configuration struct {
		JdkHome string `yaml:"jdkHome"`
	} `yaml:"configuration"`
}

// Provider reads toolchains.yaml lazily on first use.
type Provider struct {
	path string

	once       sync.Once
	toolchains []*domain.Toolchain
	err        error
}

var _ ports.ToolchainProvider = (*Provider)(nil)

// NewProvider creates a Provider for the toolchains file at path. A missing file means no toolchains.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// WithFile returns a provider reading path instead.
func (p *Provider) WithFile(path string) ports.ToolchainProvider {
	return NewProvider(path)
}

func (p *Provider) load() {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.err = zerr.With(errors.Join(domain.ErrToolchainReadFailed, err), "path", p.path)
		}
		return
	}

	var file toolchainsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		p.err = zerr.With(errors.Join(domain.ErrToolchainReadFailed, err), "path", p.path)
		return
	}

	base := filepath.Dir(p.path)
	for _, e := range file.Toolchains {
		home := e.Configuration.JdkHome
		if home != "" && !filepath.IsAbs(home) {
			home = filepath.Join(base, home)
		}
		p.toolchains = append(p.toolchains, &domain.Toolchain{
			Type:    e.Type,
			ID:      e.Provides.ID,
			Version: e.Provides.Version,
			JdkHome: home,
		})
	}
}

// FindMatchingJavaToolchain implements ports.ToolchainProvider.
// It returns nil without error when no JDK toolchain provides ee.
func (p *Provider) FindMatchingJavaToolchain(ee string) (*domain.Toolchain, error) {
	p.once.Do(p.load)
	if p.err != nil {
		return nil, p.err
	}
	for _, tc := range p.toolchains {
		if tc.Type == TypeJDK && tc.ID == ee {
			return tc, nil
		}
	}
	return nil, nil //nolint:nilnil // absence is not an error
}

// FindTool implements ports.ToolchainProvider.
func (p *Provider) FindTool(tc *domain.Toolchain, tool string) string {
	if tc == nil || tc.JdkHome == "" {
		return ""
	}
	name := tool
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path := filepath.Join(tc.JdkHome, "bin", name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}
