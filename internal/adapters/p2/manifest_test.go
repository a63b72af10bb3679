package p2_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/eqrun/internal/adapters/p2"
	"go.trai.ch/eqrun/internal/core/domain"
)

const bundleManifest = "Manifest-Version: 1.0\r\n" +
	"Bundle-ManifestVersion: 2\r\n" +
	"Bundle-SymbolicName: com.example.bundle;singleton:=true\r\n" +
	"Bundle-Version: 1.2.0.qualifier\r\n" +
	"Require-Bundle: org.eclipse.core.runtime;bundle-version=\"[3.0.0,4.0.0)\",\r\n" +
	" org.eclipse.ui;resolution:=optional\r\n" +
	"Import-Package: org.osgi.framework;version=\"1.3.0\",javax.xml.parsers\r\n" +
	"Export-Package: com.example.bundle.api;version=\"1.2.0\",com.exam\r\n" +
	" ple.bundle.spi\r\n" +
	"\r\n" +
	"Name: ignored\r\n" +
	"Bundle-SymbolicName: wrong\r\n"

func writeBundleDir(t *testing.T, dir, manifest string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "META-INF"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "META-INF", "MANIFEST.MF"), []byte(manifest), 0o600))
	return dir
}

func writeBundleJar(t *testing.T, path, manifest string) string {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("META-INF/MANIFEST.MF")
	require.NoError(t, err)
	_, err = w.Write([]byte(manifest))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestReadManifest_Directory(t *testing.T) {
	dir := writeBundleDir(t, t.TempDir(), bundleManifest)

	m, err := p2.ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "com.example.bundle", m.SymbolicName())
	assert.Equal(t, "com.example.bundle.api;version=\"1.2.0\",com.example.bundle.spi", m["Export-Package"])

	u, err := m.Unit(dir)
	require.NoError(t, err)
	assert.Equal(t, "com.example.bundle", u.ID.String())
	assert.Equal(t, "1.2.0.qualifier", u.Version.String())
	assert.Equal(t, dir, u.Location)
	assert.Equal(t, domain.TypeEclipsePlugin, u.Type())

	require.Len(t, u.Requires, 4)
	assert.Equal(t, "org.eclipse.core.runtime", u.Requires[0].Name.String())
	assert.True(t, u.Requires[0].Range.Includes(domain.MustParseVersion("3.18.0")))
	assert.False(t, u.Requires[0].Range.Includes(domain.MustParseVersion("4.0.0")))
	assert.True(t, u.Requires[1].Optional)
	assert.Equal(t, domain.NamespacePackage, u.Requires[2].Namespace)

	assert.True(t, u.Satisfies(domain.Requirement{
		Namespace: domain.NamespacePackage,
		Name:      domain.NewInternedString("com.example.bundle.spi"),
		Range:     domain.AnyVersion,
	}))
}

func TestReadManifest_JarFragment(t *testing.T) {
	manifest := "Bundle-SymbolicName: com.example.bundle.linux\n" +
		"Bundle-Version: 1.0.0\n" +
		"Fragment-Host: com.example.bundle;bundle-version=\"1.0.0\"\n"
	jar := writeBundleJar(t, filepath.Join(t.TempDir(), "frag.jar"), manifest)

	m, err := p2.ReadManifest(jar)
	require.NoError(t, err)
	u, err := m.Unit(jar)
	require.NoError(t, err)

	assert.Equal(t, domain.TypeEclipseFragment, u.Type())
	require.Len(t, u.Requires, 1)
	assert.Equal(t, "com.example.bundle", u.Requires[0].Name.String())
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := p2.ReadManifest(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestReadFailed)
}

func TestManifest_NotABundle(t *testing.T) {
	dir := writeBundleDir(t, t.TempDir(), "Manifest-Version: 1.0\n")
	m, err := p2.ReadManifest(dir)
	require.NoError(t, err)
	_, err = m.Unit(dir)
	assert.ErrorContains(t, err, "not an OSGi bundle")
}
