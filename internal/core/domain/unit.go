package domain

import "strings"

// Well-known p2 capability namespaces.
const (
	NamespaceIU       = "org.eclipse.equinox.p2.iu"
	NamespaceBundle   = "osgi.bundle"
	NamespaceFragment = "osgi.fragment"
	NamespacePackage  = "java.package"
	NamespaceEE       = "osgi.ee"
)

// Artifact classifiers used by p2 artifact repositories.
const (
	ClassifierBundle  = "osgi.bundle"
	ClassifierFeature = "org.eclipse.update.feature"
)

// PropertyMavenClassifier names the classifier of the artifact a unit was built from.
const PropertyMavenClassifier = "maven-classifier"

// FeatureGroupSuffix marks the installable unit that stands for an Eclipse feature.
const FeatureGroupSuffix = ".feature.group"

// Capability is something an installable unit provides.
type Capability struct {
	Namespace string
	Name      InternedString
	Version   Version
}

// Requirement is something an installable unit needs.
type Requirement struct {
	Namespace string
	Name      InternedString
	Range     VersionRange
	Optional  bool
	// Filter is an LDAP filter; the requirement applies only when it matches the target environment.
	Filter string
	// Match is an LDAP filter over capability properties. It replaces Name and Range when set.
	Match string
}

func (r Requirement) String() string {
	if r.Match != "" {
		return r.Namespace + " " + r.Match
	}
	return r.Namespace + "/" + r.Name.String() + " " + r.Range.String()
}

// ArtifactRef names a downloadable artifact of an installable unit.
type ArtifactRef struct {
	Classifier string
	ID         string
	Version    Version
}

// InstallableUnit is p2 metadata for one unit.
type InstallableUnit struct {
	ID         InternedString
	Version    Version
	Provides   []Capability
	Requires   []Requirement
	Filter     string
	Artifacts  []ArtifactRef
	Properties map[string]string

	// Location is set for units that already exist on disk (reactor projects and local bundles).
	Location string
	Reactor  *ReactorProject
}

// Satisfies reports whether u provides a capability matching req.
func (u *InstallableUnit) Satisfies(req Requirement) bool {
	for _, c := range u.Provides {
		if c.Namespace == req.Namespace && c.Name == req.Name && req.Range.Includes(c.Version) {
			return true
		}
	}
	return false
}

// Type classifies the unit for resolver results.
func (u *InstallableUnit) Type() ArtifactType {
	if strings.HasSuffix(u.ID.String(), FeatureGroupSuffix) {
		return TypeEclipseFeature
	}
	isBundle := u.Location != ""
	for _, a := range u.Artifacts {
		switch a.Classifier {
		case ClassifierFeature:
			return TypeEclipseFeature
		case ClassifierBundle:
			isBundle = true
		}
	}
	if !isBundle {
		return TypeInstallableUnit
	}
	for _, c := range u.Provides {
		if c.Namespace == NamespaceFragment {
			return TypeEclipseFragment
		}
	}
	return TypeEclipsePlugin
}

// UnitKey identifies an installable unit independent of its type.
func (u *InstallableUnit) UnitKey() string {
	return u.ID.String() + "_" + u.Version.String()
}

func (u *InstallableUnit) String() string {
	return u.ID.String() + " " + u.Version.String()
}

// TargetPlatformConfig describes where a target platform is built from.
type TargetPlatformConfig struct {
	Repositories []RepositoryRef

	// ForceIgnoreLocalArtifacts keeps bundles from the local bundle directory out of the platform.
	ForceIgnoreLocalArtifacts bool

	// Reactor projects join the platform as units located at their base dir.
	Reactor []*ReactorProject
}

// RemoteArtifact is a downloadable artifact and the checksums its repository published.
type RemoteArtifact struct {
	URL        string
	Repository string
	Size       int64
	SHA256     string
	MD5        string
}

// TargetPlatform is the set of units available to the resolver, in repository order.
type TargetPlatform struct {
	ExecutionEnvironment string
	Units                []*InstallableUnit

	// Artifacts maps InstallableUnit.UnitKey to where its bundle can be fetched.
	Artifacts map[string]RemoteArtifact
}
