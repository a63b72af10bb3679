package domain

import "go.trai.ch/zerr"

// Failure kinds. Every error leaving the engine is joined with exactly one of these
// so callers can classify it with errors.Is.
var (
	// ErrConfiguration marks user-visible, actionable configuration problems.
	ErrConfiguration = zerr.New("configuration error")

	// ErrResolutionFailed marks failures of the resolver to satisfy the seeds.
	ErrResolutionFailed = zerr.New("resolution failed")

	// ErrInstallationFailed marks failures while laying out the Equinox installation.
	ErrInstallationFailed = zerr.New("failed to create equinox installation")

	// ErrLaunchFailed marks a child process that exited non-zero or could not be run.
	ErrLaunchFailed = zerr.New("Error while executing platform")

	// ErrLaunchTimeout is returned when the child process outlives its timeout.
	// It deliberately does not match ErrLaunchFailed.
	ErrLaunchTimeout = zerr.New("forked process timed out")

	// ErrInternal marks broken internal invariants.
	ErrInternal = zerr.New("internal error")
)

var (
	// ErrNoRepositories is returned when no p2 repository is configured for a run.
	ErrNoRepositories = zerr.New("at least one p2 repository is required")

	// ErrInvalidDependency is returned when a dependency seed is rejected by the resolver.
	ErrInvalidDependency = zerr.New("invalid dependency")

	// ErrInvalidArtifactReference is returned by the resolver for malformed type/id/version triples.
	ErrInvalidArtifactReference = zerr.New("illegal artifact reference")

	// ErrArgLineParse is returned when a legacy argument line cannot be split.
	ErrArgLineParse = zerr.New("Error parsing commandline")

	// ErrConfigReadFailed is returned when the project file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the project file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidVersion is returned for strings that are not OSGi versions.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrInvalidVersionRange is returned for strings that are not OSGi version ranges.
	ErrInvalidVersionRange = zerr.New("invalid version range")

	// ErrInvalidFilter is returned for malformed LDAP filters in repository metadata.
	ErrInvalidFilter = zerr.New("invalid filter")
)

var (
	// ErrRepositoryLoadFailed is returned when repository metadata cannot be fetched or parsed.
	ErrRepositoryLoadFailed = zerr.New("failed to load p2 repository")

	// ErrUnsatisfiedRequirement is returned when no unit provides a mandatory capability.
	ErrUnsatisfiedRequirement = zerr.New("unsatisfied requirement")

	// ErrUnknownExecutionEnvironment is returned for execution environment names the resolver does not know.
	ErrUnknownExecutionEnvironment = zerr.New("unknown execution environment")

	// ErrArtifactNotFound is returned when a unit's artifact is not listed by any repository.
	ErrArtifactNotFound = zerr.New("artifact not found in repository")

	// ErrArtifactDownloadFailed is returned when an artifact cannot be fetched.
	ErrArtifactDownloadFailed = zerr.New("failed to download artifact")

	// ErrChecksumMismatch is returned when a downloaded artifact does not match its published checksum.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrManifestReadFailed is returned when a bundle manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read bundle manifest")

	// ErrPoolWriteFailed is returned when the bundle pool cannot persist an artifact.
	ErrPoolWriteFailed = zerr.New("failed to write to bundle pool")

	// ErrPoolIndexFailed is returned when the bundle pool index cannot be read or written.
	ErrPoolIndexFailed = zerr.New("failed to access bundle pool index")
)

var (
	// ErrMissingFramework is returned when the installation has no org.eclipse.osgi bundle.
	ErrMissingFramework = zerr.New("installation does not contain the OSGi framework bundle")

	// ErrMissingLauncher is returned when the installation has no launcher bundle.
	ErrMissingLauncher = zerr.New("installation does not contain the equinox launcher bundle")

	// ErrToolchainReadFailed is returned when the toolchains file exists but cannot be read.
	ErrToolchainReadFailed = zerr.New("failed to read toolchains file")

	// ErrDependencyListCreate is returned when dependencies-list.txt cannot be created.
	ErrDependencyListCreate = zerr.New("failed to create dependency list")

	// ErrDependencyListWrite is returned when dependencies-list.txt cannot be written.
	ErrDependencyListWrite = zerr.New("failed to write dependency list")
)
