package domain

// InstallationEntry is one bundle of an installation description.
type InstallationEntry struct {
	Key      ArtifactKey
	Location string
}

// InstallationDescription is the ordered list of bundles an installation contains.
// Insertion order is preserved.
type InstallationDescription struct {
	entries []InstallationEntry
}

// AddBundle appends a bundle.
func (d *InstallationDescription) AddBundle(key ArtifactKey, location string) {
	d.entries = append(d.entries, InstallationEntry{Key: key, Location: location})
}

// Bundles returns the bundles in insertion order.
func (d *InstallationDescription) Bundles() []InstallationEntry {
	if d == nil {
		return nil
	}
	return d.entries
}

// Find returns the first bundle with the given id.
func (d *InstallationDescription) Find(id string) (InstallationEntry, bool) {
	for _, e := range d.Bundles() {
		if e.Key.ID.String() == id {
			return e, true
		}
	}
	return InstallationEntry{}, false
}

// Len returns the number of bundles.
func (d *InstallationDescription) Len() int {
	return len(d.Bundles())
}

// Installation is a materialized Equinox runtime on disk.
type Installation struct {
	Location         string
	ConfigurationDir string
	LauncherJar      string
	FrameworkJar     string
}
