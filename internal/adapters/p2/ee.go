package p2

import (
	"strconv"
	"strings"

	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/zerr"
)

// ExecutionEnvironment is the capability profile of the JRE the platform runs on.
type ExecutionEnvironment struct {
	Name     string
	provides []domain.Capability
}

// systemPackagePrefixes are the non-java.* packages a JRE exports from its system bundle.
var systemPackagePrefixes = []string{
	"javax.", "org.w3c.", "org.xml.", "org.ietf.", "org.omg.",
}

// ParseExecutionEnvironment builds the profile for name.
func ParseExecutionEnvironment(name string) (*ExecutionEnvironment, error) {
	unknown := zerr.With(domain.ErrUnknownExecutionEnvironment, "execution_environment", name)
	ee := &ExecutionEnvironment{Name: name}

	if rest, ok := strings.CutPrefix(name, "CDC-"); ok {
		_, foundation, found := strings.Cut(rest, "/Foundation-")
		v, err := domain.ParseVersion(foundation)
		if !found || err != nil {
			return nil, unknown
		}
		ee.add("CDC/Foundation", v)
		return ee, nil
	}

	idx := strings.LastIndex(name, "-")
	if idx < 0 {
		return nil, unknown
	}
	family := name[:idx]
	v, err := domain.ParseVersion(name[idx+1:])
	if err != nil {
		return nil, unknown
	}

	switch family {
	case "JavaSE", "J2SE":
		ee.addJavaSE(v)
	case "JRE", "OSGi/Minimum":
		maxMinor := uint64(2)
		if family == "JRE" {
			maxMinor = 1
		}
		if v.Major() != 1 || v.Minor() > maxMinor {
			return nil, unknown
		}
		ee.addMinors(family, v)
	default:
		return nil, unknown
	}
	return ee, nil
}

func (e *ExecutionEnvironment) add(name string, v domain.Version) {
	e.provides = append(e.provides, domain.Capability{
		Namespace: domain.NamespaceEE,
		Name:      domain.NewInternedString(name),
		Version:   v,
	})
}

// addMinors provides name at 1.0 through v.
func (e *ExecutionEnvironment) addMinors(name string, v domain.Version) {
	for minor := uint64(0); minor <= v.Minor(); minor++ {
		e.add(name, domain.MustParseVersion("1."+strconv.FormatUint(minor, 10)))
	}
}

// addJavaSE provides JavaSE 1.0 through 1.8 and then every feature release up to v.
func (e *ExecutionEnvironment) addJavaSE(v domain.Version) {
	legacyMax := v
	if v.Major() > 1 {
		legacyMax = domain.MustParseVersion("1.8")
	}
	for minor := uint64(0); minor <= legacyMax.Minor() && minor <= 8; minor++ {
		e.add("JavaSE", domain.MustParseVersion("1."+strconv.FormatUint(minor, 10)))
	}
	for major := uint64(9); major <= v.Major(); major++ {
		e.add("JavaSE", domain.MustParseVersion(strconv.FormatUint(major, 10)))
	}
	if v.Minor() >= 2 || v.Major() > 1 {
		e.addMinors("OSGi/Minimum", domain.MustParseVersion("1.2"))
	}
}

// Satisfies reports whether the runtime itself fulfills req.
func (e *ExecutionEnvironment) Satisfies(req domain.Requirement) bool {
	switch req.Namespace {
	case domain.NamespacePackage:
		name := req.Name.String()
		if strings.HasPrefix(name, "java.") {
			return true
		}
		for _, prefix := range systemPackagePrefixes {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
		return false
	case domain.NamespaceEE:
		if req.Match != "" {
			return e.matches(req.Match)
		}
		for _, c := range e.provides {
			if c.Name == req.Name && req.Range.Includes(c.Version) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (e *ExecutionEnvironment) matches(expr string) bool {
	f, err := ParseFilter(expr)
	if err != nil {
		return false
	}
	for _, c := range e.provides {
		props := map[string]string{
			domain.NamespaceEE: c.Name.String(),
			"version":          c.Version.String(),
		}
		if f.Match(props) {
			return true
		}
	}
	return false
}
