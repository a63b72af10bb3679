package domain

import (
	"fmt"
)

// LaunchPlan is everything needed to fork the Equinox runtime.
type LaunchPlan struct {
	// JvmExecutable is nil when the launcher should pick the interpreter itself.
	JvmExecutable *string
	WorkingDir    string
	VMArgs        []string
	ProgramArgs   []string
	Environment   map[string]string
	LauncherJar   string
}

// Argv returns the child command line without the interpreter.
func (p *LaunchPlan) Argv() []string {
	argv := make([]string, 0, len(p.VMArgs)+len(p.ProgramArgs)+2)
	argv = append(argv, p.VMArgs...)
	argv = append(argv, "-jar", p.LauncherJar)
	return append(argv, p.ProgramArgs...)
}

// ExitError is returned when the forked platform exits with a non-zero code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s (return code: %d)", ErrLaunchFailed.Error(), e.Code)
}

// Is makes every ExitError match ErrLaunchFailed.
func (e *ExitError) Is(target error) bool {
	return target == ErrLaunchFailed
}
