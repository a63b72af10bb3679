package equinox

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"go.trai.ch/eqrun/internal/core/domain"
	"go.trai.ch/eqrun/internal/core/ports"
	"go.trai.ch/zerr"
)

// killGrace is how long the child's output pipes may stay open after its process group was killed.
const killGrace = 5 * time.Second

// Launcher forks `java <vmArgs> -jar <launcher> <programArgs>`.
type Launcher struct {
	logger  ports.Logger
	environ func() []string
}

var _ ports.Launcher = (*Launcher)(nil)

// NewLauncher creates a Launcher inheriting the current process environment.
func NewLauncher(logger ports.Logger) *Launcher {
	return &Launcher{logger: logger, environ: os.Environ}
}

// Execute implements ports.Launcher.
func (l *Launcher) Execute(ctx context.Context, plan *domain.LaunchPlan, timeoutSeconds int) (int, error) {
	env := mergeEnvironment(l.environ(), plan.Environment)

	java, err := javaExecutable(plan, env)
	if err != nil {
		return -1, err
	}

	runCtx := ctx
	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, java, plan.Argv()...) //nolint:gosec // command line assembled from the project file
	cmd.Dir = plan.WorkingDir
	cmd.Env = env
	cmd.WaitDelay = killGrace
	killProcessGroup(cmd)

	stdout := &logWriter{emit: l.logger.Info}
	stderr := &logWriter{emit: l.logger.Warn}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	l.logger.Debug("Command line: " + strings.Join(cmd.Args, " "))
	err = cmd.Run()
	stdout.Flush()
	stderr.Flush()

	if err == nil {
		return 0, nil
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return -1, zerr.With(zerr.Wrap(domain.ErrLaunchTimeout, "platform killed"), "timeout_seconds", timeoutSeconds)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return exitErr.ExitCode(), nil
	}

	return -1, zerr.With(zerr.Wrap(err, "failed to start platform"), "java", java)
}

// javaExecutable picks the plan's interpreter, then $JAVA_HOME/bin/java, then java on PATH.
func javaExecutable(plan *domain.LaunchPlan, env []string) (string, error) {
	if plan.JvmExecutable != nil && *plan.JvmExecutable != "" {
		return *plan.JvmExecutable, nil
	}

	name := "java"
	if runtime.GOOS == "windows" {
		name = "java.exe"
	}

	if home := lookupEnv(env, "JAVA_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", name)
		if findExecutable(candidate) == nil {
			return candidate, nil
		}
	}

	path, err := lookPath(name, env)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "no java interpreter found"), "hint", "set JAVA_HOME or configure a toolchain")
	}
	return path, nil
}

// mergeEnvironment overlays overrides onto the inherited environment.
// The result is sorted so the child sees a stable environment.
func mergeEnvironment(inherited []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(inherited)+len(overrides))
	for _, entry := range inherited {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

func lookupEnv(env []string, key string) string {
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, key+"="); ok {
			return v
		}
	}
	return ""
}

// lookPath searches file in the PATH of env rather than the PATH of this process.
func lookPath(file string, env []string) (string, error) {
	path := lookupEnv(env, "PATH")
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && (m&0o111 != 0 || runtime.GOOS == "windows") {
		return nil
	}
	return os.ErrPermission
}

// logWriter forwards complete lines to emit. Partial lines wait for their newline or Flush.
type logWriter struct {
	emit func(string)

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line, keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush emits a trailing line without newline.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(strings.TrimRight(w.buf.String(), "\r\n"))
		w.buf.Reset()
	}
}
