package p2

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/zerr"
)

const manifestPath = "META-INF/MANIFEST.MF"

// Manifest is the main section of a bundle manifest.
type Manifest map[string]string

// ReadManifest reads the manifest of a bundle jar or an exploded bundle directory.
func ReadManifest(location string) (Manifest, error) {
	fail := func(err error) error {
		return zerr.With(errors.Join(domain.ErrManifestReadFailed, err), "location", location)
	}

	info, err := os.Stat(location)
	if err != nil {
		return nil, fail(err)
	}

	if info.IsDir() {
		f, err := os.Open(filepath.Join(location, filepath.FromSlash(manifestPath))) //nolint:gosec // bundle dir
		if err != nil {
			return nil, fail(err)
		}
		defer func() { _ = f.Close() }()
		return parseManifest(f)
	}

	zr, err := zip.OpenReader(location)
	if err != nil {
		return nil, fail(err)
	}
	defer func() { _ = zr.Close() }()

	f, err := openEntry(&zr.Reader, manifestPath)
	if err != nil {
		return nil, fail(err)
	}
	defer func() { _ = f.Close() }()
	return parseManifest(f)
}

func parseManifest(r io.Reader) (Manifest, error) {
	m := make(Manifest)
	var key string
	var value strings.Builder

	flush := func() {
		if key != "" {
			m[key] = value.String()
		}
		key = ""
		value.Reset()
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		switch {
		case line == "":
			// End of the main section.
			flush()
			return m, nil
		case line[0] == ' ':
			value.WriteString(line[1:])
		default:
			flush()
			k, v, ok := strings.Cut(line, ":")
			if !ok {
				return nil, zerr.With(zerr.Wrap(domain.ErrManifestReadFailed, "malformed header line"), "line", line)
			}
			key = strings.TrimSpace(k)
			value.WriteString(strings.TrimSpace(v))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Join(domain.ErrManifestReadFailed, err)
	}
	flush()
	return m, nil
}

// clause is one comma separated element of a manifest header.
type clause struct {
	name       string
	attributes map[string]string
	directives map[string]string
}

// parseHeader splits a header value into clauses, honouring quotes.
func parseHeader(value string) []clause {
	var clauses []clause
	for _, part := range splitOutsideQuotes(value, ',') {
		fields := splitOutsideQuotes(part, ';')
		if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
			continue
		}
		c := clause{
			name:       strings.TrimSpace(fields[0]),
			attributes: make(map[string]string),
			directives: make(map[string]string),
		}
		for _, f := range fields[1:] {
			if k, v, ok := strings.Cut(f, ":="); ok {
				c.directives[strings.TrimSpace(k)] = unquote(v)
				continue
			}
			if k, v, ok := strings.Cut(f, "="); ok {
				c.attributes[strings.TrimSpace(k)] = unquote(v)
			}
		}
		clauses = append(clauses, c)
	}
	return clauses
}

func splitOutsideQuotes(s string, sep byte) []string {
	var parts []string
	var cur bytes.Buffer
	quoted := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			quoted = !quoted
			cur.WriteByte(c)
		case c == sep && !quoted:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}

// SymbolicName returns the bundle symbolic name without directives.
func (m Manifest) SymbolicName() string {
	clauses := parseHeader(m["Bundle-SymbolicName"])
	if len(clauses) == 0 {
		return ""
	}
	return clauses[0].name
}

// Unit converts the manifest into an installable unit located at location.
func (m Manifest) Unit(location string) (*domain.InstallableUnit, error) {
	bsn := m.SymbolicName()
	if bsn == "" {
		return nil, zerr.With(zerr.New("not an OSGi bundle"), "location", location)
	}

	version := domain.MustParseVersion("0.0.0")
	if raw := m["Bundle-Version"]; raw != "" {
		v, err := domain.ParseVersion(raw)
		if err != nil {
			return nil, zerr.With(err, "location", location)
		}
		version = v
	}

	id := domain.NewInternedString(bsn)
	u := &domain.InstallableUnit{
		ID:      id,
		Version: version,
		Provides: []domain.Capability{
			{Namespace: domain.NamespaceIU, Name: id, Version: version},
			{Namespace: domain.NamespaceBundle, Name: id, Version: version},
		},
		Artifacts: []domain.ArtifactRef{{Classifier: domain.ClassifierBundle, ID: bsn, Version: version}},
		Location:  location,
	}

	for _, c := range parseHeader(m["Export-Package"]) {
		u.Provides = append(u.Provides, domain.Capability{
			Namespace: domain.NamespacePackage,
			Name:      domain.NewInternedString(c.name),
			Version:   attrVersion(c.attributes["version"]),
		})
	}

	if hosts := parseHeader(m["Fragment-Host"]); len(hosts) > 0 {
		host := hosts[0]
		u.Provides = append(u.Provides, domain.Capability{
			Namespace: domain.NamespaceFragment,
			Name:      domain.NewInternedString(host.name),
			Version:   version,
		})
		req, err := requirement(domain.NamespaceBundle, host, "bundle-version")
		if err != nil {
			return nil, zerr.With(err, "location", location)
		}
		u.Requires = append(u.Requires, req)
	}

	for _, c := range parseHeader(m["Require-Bundle"]) {
		req, err := requirement(domain.NamespaceBundle, c, "bundle-version")
		if err != nil {
			return nil, zerr.With(err, "location", location)
		}
		u.Requires = append(u.Requires, req)
	}

	for _, c := range parseHeader(m["Import-Package"]) {
		req, err := requirement(domain.NamespacePackage, c, "version")
		if err != nil {
			return nil, zerr.With(err, "location", location)
		}
		u.Requires = append(u.Requires, req)
	}

	return u, nil
}

func requirement(namespace string, c clause, versionAttr string) (domain.Requirement, error) {
	rng, err := domain.ParseVersionRange(c.attributes[versionAttr])
	if err != nil {
		return domain.Requirement{}, err
	}
	return domain.Requirement{
		Namespace: namespace,
		Name:      domain.NewInternedString(c.name),
		Range:     rng,
		Optional:  c.directives["resolution"] == "optional",
	}, nil
}

func attrVersion(s string) domain.Version {
	if s == "" {
		return domain.MustParseVersion("0.0.0")
	}
	v, err := domain.ParseVersion(s)
	if err != nil {
		return domain.MustParseVersion("0.0.0")
	}
	return v
}
