package domain

import "fmt"

// ArtifactType is the symbolic kind of an artifact as used by dependency seeds and resolver results.
type ArtifactType string

const (
	// TypeEclipsePlugin is an OSGi bundle.
	TypeEclipsePlugin ArtifactType = "eclipse-plugin"
	// TypeEclipseFragment is an OSGi fragment bundle.
	TypeEclipseFragment ArtifactType = "eclipse-fragment"
	// TypeEclipseFeature is an Eclipse feature (a feature group installable unit).
	TypeEclipseFeature ArtifactType = "eclipse-feature"
	// TypeInstallableUnit is any other p2 installable unit, e.g. a category.
	TypeInstallableUnit ArtifactType = "p2-installable-unit"
)

// IsKnown reports whether t is one of the artifact types the resolver understands.
func (t ArtifactType) IsKnown() bool {
	switch t {
	case TypeEclipsePlugin, TypeEclipseFragment, TypeEclipseFeature, TypeInstallableUnit:
		return true
	default:
		return false
	}
}

// IsBundle reports whether artifacts of this type are OSGi bundles on disk.
func (t ArtifactType) IsBundle() bool {
	return t == TypeEclipsePlugin || t == TypeEclipseFragment
}

// ArtifactKey identifies an artifact by type, id and version.
type ArtifactKey struct {
	Type    ArtifactType
	ID      InternedString
	Version string
}

// NewArtifactKey creates an ArtifactKey, interning the id.
func NewArtifactKey(t ArtifactType, id, version string) ArtifactKey {
	return ArtifactKey{Type: t, ID: NewInternedString(id), Version: version}
}

func (k ArtifactKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Type, k.ID.String(), k.Version)
}

// RepositoryRef points at a p2 repository.
type RepositoryRef struct {
	ID  string
	URL string
}

// DependencySeed is a root requirement handed to the resolver.
// An empty Version means "best match".
type DependencySeed struct {
	Type       ArtifactType
	ArtifactID string
	Version    string
}

func (s DependencySeed) String() string {
	return fmt.Sprintf("%s:%s:%s", s.Type, s.ArtifactID, s.Version)
}

// ResolvedEntry is one artifact of a resolution result.
type ResolvedEntry struct {
	Type     ArtifactType
	ID       string
	Version  string
	Location string

	// Classifier selects which produced artifact of a reactor project is meant. Empty is the main artifact.
	Classifier string

	// Reactor is set when the entry is provided by another project of the same build.
	Reactor *ReactorProject
}

// Key returns the ArtifactKey of the entry.
func (e ResolvedEntry) Key() ArtifactKey {
	return NewArtifactKey(e.Type, e.ID, e.Version)
}

// ResolutionResult is the closure computed for one target environment.
type ResolutionResult struct {
	Entries []ResolvedEntry
}

// ArtifactDescriptor is one element of a project's resolved dependency set.
type ArtifactDescriptor struct {
	Key        ArtifactKey
	Location   string
	Classifier string
	Reactor    *ReactorProject
}
