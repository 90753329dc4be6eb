//go:build !unix

package exec

import "os/exec"

// configureCommand keeps the default cancellation, which kills the process.
// Only unix has process groups to signal.
func configureCommand(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
}
