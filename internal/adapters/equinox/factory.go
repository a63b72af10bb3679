// Package equinox materializes and launches Equinox OSGi runtimes.
package equinox

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultStartLevel is osgi.bundles.defaultStartLevel.
const DefaultStartLevel = 4

type startLevel struct {
	level     int
	autoStart bool
}

// Bundles that must be started explicitly for a headless Eclipse runtime.
var startLevels = map[string]startLevel{
	"org.apache.felix.scr":       {level: 1, autoStart: true},
	"org.eclipse.equinox.ds":     {level: 1, autoStart: true},
	"org.eclipse.equinox.common": {level: 2, autoStart: true},
	"org.eclipse.equinox.event":  {level: 2, autoStart: true},
	domain.CoreRuntimeBundle:     {level: 4, autoStart: true},
}

// InstallationFactory writes Equinox configuration areas.
type InstallationFactory struct {
	logger ports.Logger
}

var _ ports.InstallationFactory = (*InstallationFactory)(nil)

// NewInstallationFactory creates an InstallationFactory.
func NewInstallationFactory(logger ports.Logger) *InstallationFactory {
	return &InstallationFactory{logger: logger}
}

// CreateInstallation implements ports.InstallationFactory.
func (f *InstallationFactory) CreateInstallation(
	ctx context.Context,
	desc *domain.InstallationDescription,
	workDir string,
) (*domain.Installation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	framework, ok := desc.Find(domain.FrameworkBundle)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingFramework, "cannot create installation"), "bundle", domain.FrameworkBundle)
	}
	launcher, ok := desc.Find(domain.EquinoxLauncherBundle)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrMissingLauncher, "cannot create installation"), "bundle", domain.EquinoxLauncherBundle)
	}

	location, err := filepath.Abs(workDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid work directory"), "path", workDir)
	}
	confDir := filepath.Join(location, domain.ConfigurationDirName)
	if err := os.MkdirAll(confDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create configuration area"), "path", confDir)
	}

	props := properties.NewProperties()
	set := func(key, value string) error {
		_, _, err := props.Set(key, value)
		return err
	}
	for _, kv := range [][2]string{
		{"osgi.install.area", fileURL(location)},
		{"osgi.framework", fileURL(absLocation(framework.Location))},
		{"osgi.bundles", bundlesList(desc)},
		{"osgi.bundles.defaultStartLevel", strconv.Itoa(DefaultStartLevel)},
		{"osgi.configuration.cascaded", "false"},
		{"eclipse.ignoreApp", "false"},
	} {
		if err := set(kv[0], kv[1]); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid configuration property"), "key", kv[0])
		}
	}

	iniPath := filepath.Join(confDir, domain.ConfigIniFileName)
	out, err := os.Create(iniPath) //nolint:gosec // path below the owned work directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to write config.ini"), "path", iniPath)
	}
	if _, err := props.Write(out, properties.UTF8); err != nil {
		_ = out.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to write config.ini"), "path", iniPath)
	}
	if err := out.Close(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to write config.ini"), "path", iniPath)
	}

	f.logger.Debug("Wrote " + iniPath + " with " + strconv.Itoa(desc.Len()) + " bundles")

	return &domain.Installation{
		Location:         location,
		ConfigurationDir: confDir,
		LauncherJar:      absLocation(launcher.Location),
		FrameworkJar:     absLocation(framework.Location),
	}, nil
}

// bundlesList renders osgi.bundles. The framework is started by the launcher and is not listed.
func bundlesList(desc *domain.InstallationDescription) string {
	refs := make([]string, 0, desc.Len())
	for _, b := range desc.Bundles() {
		id := b.Key.ID.String()
		if id == domain.FrameworkBundle {
			continue
		}
		ref := "reference:" + fileURL(absLocation(b.Location))
		if sl, ok := startLevels[id]; ok {
			ref += "@" + strconv.Itoa(sl.level)
			if sl.autoStart {
				ref += ":start"
			}
		}
		refs = append(refs, ref)
	}
	return strings.Join(refs, ",")
}

func fileURL(path string) string {
	return "file:" + filepath.ToSlash(path)
}

func absLocation(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
