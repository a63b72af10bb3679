package domain

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Version is an OSGi version: major.minor.micro with an optional qualifier.
// The numeric part is ordered as a semantic version, the qualifier lexicographically.
type Version struct {
	raw       string
	base      *semver.Version
	qualifier string
}

var zeroVersion = semver.New(0, 0, 0, "", "")

// ParseVersion parses an OSGi version. Missing minor and micro segments default to zero.
func ParseVersion(s string) (Version, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Version{}, zerr.With(ErrInvalidVersion, "version", s)
	}

	parts := strings.SplitN(raw, ".", 4)
	var segments [3]uint64
	for i := 0; i < len(parts) && i < 3; i++ {
		n, err := strconv.ParseUint(parts[i], 10, 64)
		if err != nil {
			return Version{}, zerr.With(errors.Join(ErrInvalidVersion, err), "version", s)
		}
		segments[i] = n
	}
	base := semver.New(segments[0], segments[1], segments[2], "", "")

	var qualifier string
	if len(parts) == 4 {
		qualifier = parts[3]
		if qualifier == "" || strings.Trim(qualifier, validQualifierChars) != "" {
			return Version{}, zerr.With(ErrInvalidVersion, "version", s)
		}
	}

	return Version{raw: raw, base: base, qualifier: qualifier}, nil
}

const validQualifierChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-"

// MustParseVersion is ParseVersion for constants known to be valid.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) semver() *semver.Version {
	if v.base == nil {
		return zeroVersion
	}
	return v.base
}

// Major returns the major segment.
func (v Version) Major() uint64 { return v.semver().Major() }

// Minor returns the minor segment.
func (v Version) Minor() uint64 { return v.semver().Minor() }

// Qualifier returns the qualifier segment, possibly empty.
func (v Version) Qualifier() string { return v.qualifier }

// Compare returns -1, 0 or 1 depending on whether v sorts before, equal to or after o.
func (v Version) Compare(o Version) int {
	if c := v.semver().Compare(o.semver()); c != 0 {
		return c
	}
	return strings.Compare(v.qualifier, o.qualifier)
}

// String returns the version as written in the repository metadata.
func (v Version) String() string {
	if v.raw != "" {
		return v.raw
	}
	return v.semver().String()
}

// VersionRange is an OSGi version range.
type VersionRange struct {
	Min          Version
	MinInclusive bool
	Max          *Version
	MaxInclusive bool
}

// AnyVersion matches every version.
var AnyVersion = VersionRange{MinInclusive: true}

// ExactVersion returns the range [v,v].
func ExactVersion(v Version) VersionRange {
	return VersionRange{Min: v, MinInclusive: true, Max: &v, MaxInclusive: true}
}

// ParseVersionRange parses "[a,b)", "(a,b]", "[a,b]", "(a,b)" or a bare "a" meaning at least a.
func ParseVersionRange(s string) (VersionRange, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return AnyVersion, nil
	}

	first := raw[0]
	if first != '[' && first != '(' {
		v, err := ParseVersion(raw)
		if err != nil {
			return VersionRange{}, zerr.With(errors.Join(ErrInvalidVersionRange, err), "range", s)
		}
		return VersionRange{Min: v, MinInclusive: true}, nil
	}

	last := raw[len(raw)-1]
	if len(raw) < 2 || (last != ']' && last != ')') {
		return VersionRange{}, zerr.With(ErrInvalidVersionRange, "range", s)
	}

	lo, hi, ok := strings.Cut(raw[1:len(raw)-1], ",")
	if !ok {
		return VersionRange{}, zerr.With(ErrInvalidVersionRange, "range", s)
	}

	minV, err := ParseVersion(lo)
	if err != nil {
		return VersionRange{}, zerr.With(errors.Join(ErrInvalidVersionRange, err), "range", s)
	}
	maxV, err := ParseVersion(hi)
	if err != nil {
		return VersionRange{}, zerr.With(errors.Join(ErrInvalidVersionRange, err), "range", s)
	}

	return VersionRange{
		Min:          minV,
		MinInclusive: first == '[',
		Max:          &maxV,
		MaxInclusive: last == ']',
	}, nil
}

// Includes reports whether v lies inside the range.
func (r VersionRange) Includes(v Version) bool {
	c := v.Compare(r.Min)
	if c < 0 || (c == 0 && !r.MinInclusive) {
		return false
	}
	if r.Max == nil {
		return true
	}
	c = v.Compare(*r.Max)
	return c < 0 || (c == 0 && r.MaxInclusive)
}

func (r VersionRange) String() string {
	if r.Max == nil {
		return r.Min.String()
	}
	var b strings.Builder
	if r.MinInclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	b.WriteString(r.Min.String())
	b.WriteByte(',')
	b.WriteString(r.Max.String())
	if r.MaxInclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}
