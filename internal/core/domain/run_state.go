package domain

import "strings"

// RunState is the lifecycle state of one eclipse-run invocation.
type RunState string

const (
	// RunStateIdle is the state before anything happened.
	RunStateIdle RunState = "idle"
	// RunStateResolving covers request building and target platform resolution.
	RunStateResolving RunState = "resolving"
	// RunStateAssembling covers writing the installation to disk.
	RunStateAssembling RunState = "assembling"
	// RunStateMaterialized means the installation exists on disk.
	RunStateMaterialized RunState = "materialized"
	// RunStateLaunching covers plan building and the child process lifetime.
	RunStateLaunching RunState = "launching"
	// RunStateDone means the child exited with code zero.
	RunStateDone RunState = "done"
	// RunStateFailed means any step failed.
	RunStateFailed RunState = "failed"
)

// IsTerminal reports whether no further transition happens from s.
func (s RunState) IsTerminal() bool {
	return s == RunStateDone || s == RunStateFailed
}

// CanTransition reports whether the pipeline may move from s to next.
// Any non-terminal state may fail.
func (s RunState) CanTransition(next RunState) bool {
	if s.IsTerminal() {
		return false
	}
	if next == RunStateFailed {
		return true
	}
	switch s {
	case RunStateIdle:
		return next == RunStateResolving
	case RunStateResolving:
		return next == RunStateAssembling
	case RunStateAssembling:
		return next == RunStateMaterialized
	case RunStateMaterialized:
		return next == RunStateLaunching
	case RunStateLaunching:
		return next == RunStateDone
	default:
		return false
	}
}

// NormalizeRunState converts a string to a RunState, defaulting to idle if unknown.
func NormalizeRunState(s string) RunState {
	switch RunState(strings.ToLower(s)) {
	case RunStateResolving:
		return RunStateResolving
	case RunStateAssembling:
		return RunStateAssembling
	case RunStateMaterialized:
		return RunStateMaterialized
	case RunStateLaunching:
		return RunStateLaunching
	case RunStateDone:
		return RunStateDone
	case RunStateFailed:
		return RunStateFailed
	default:
		return RunStateIdle
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
