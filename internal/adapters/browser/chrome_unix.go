//go:build !windows

package browser

import (
	"os/exec"
	"syscall"
)

// setProcessGroup puts the browser and its renderer/GPU children in one group.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// signalProcessGroup sends SIGTERM, or SIGKILL when force is set, to the whole group.
func signalProcessGroup(cmd *exec.Cmd, force bool) error {
	if cmd.Process == nil {
		return nil
	}
	sig := syscall.SIGTERM
	if force {
		sig = syscall.SIGKILL
	}

	return syscall.Kill(-cmd.Process.Pid, sig)
}
