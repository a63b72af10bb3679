package domain

import "os"

// DefaultExecutionEnvironment is the profile used when none is configured.
// It is kept as is even though current Equinox releases need a newer one.
const DefaultExecutionEnvironment = "JavaSE-1.7"

// Bundle ids the launcher always needs.
const (
	FrameworkBundle       = "org.eclipse.osgi"
	EquinoxLauncherBundle = "org.eclipse.equinox.launcher"
	CoreRuntimeBundle     = "org.eclipse.core.runtime"
)

// DefaultBundles are seeded after the user dependencies when addDefaultDependencies is set.
var DefaultBundles = []string{FrameworkBundle, EquinoxLauncherBundle, CoreRuntimeBundle}

const (
	// ProjectFileName is the project description read by the CLI.
	ProjectFileName = "eclipserun.yaml"
	// ToolchainsFileName is the toolchain registry under the user config dir.
	ToolchainsFileName = "toolchains.yaml"
	// DefaultBuildDirName is the build directory relative to the project base dir.
	DefaultBuildDirName = "target"
	// DependencyListFileName is written by list-dependencies into the build dir.
	DependencyListFileName = "dependencies-list.txt"
	// WorkDirName is the default eclipse-run work directory inside the build dir.
	WorkDirName = "eclipserun-work"
	// WorkspaceDirName is the runtime data area below the work dir. It is reset on every run.
	WorkspaceDirName = "data"
	// ConfigurationDirName holds config.ini below the work dir.
	ConfigurationDirName = "configuration"
	// ConfigIniFileName is the Equinox configuration file.
	ConfigIniFileName = "config.ini"
	// AppName names the XDG sub directories.
	AppName = "eqrun"
	// PoolIndexFileName is the bundle pool index.
	PoolIndexFileName = "index.json"
)

const (
	// DirPerm is the default permission for directories we create.
	DirPerm os.FileMode = 0o750
	// FilePerm is the default permission for files we write.
	FilePerm os.FileMode = 0o644
	// PrivateFilePerm is used for files only the current user should read.
	PrivateFilePerm os.FileMode = 0o600
)
