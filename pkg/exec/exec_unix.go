//go:build unix

package exec

import (
	"os/exec"
	"syscall"
)

// configureCommand puts the process in its own group so a timeout kills
// anything it spawned as well.
func configureCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
