//go:build windows

package equinox

import (
	"os/exec"
	"strconv"
	"syscall"
)

// killProcessGroup makes cancellation terminate the child's whole process tree.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
	cmd.Cancel = func() error {
		//nolint:gosec // fixed command, pid of our own child
		if err := exec.Command("taskkill", "/T", "/F", "/PID", strconv.Itoa(cmd.Process.Pid)).Run(); err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
}
