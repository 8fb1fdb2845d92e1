//go:build windows

package browser

import "os/exec"

func setProcessGroup(_ *exec.Cmd) {}

// signalProcessGroup has no graceful variant on Windows; both paths kill the process.
func signalProcessGroup(cmd *exec.Cmd, _ bool) error {
	if cmd.Process == nil {
		return nil
	}

	return cmd.Process.Kill()
}
