//go:build !windows

package driver

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// setProcessGroup puts the browser in a new process group, which its renderer, GPU and zygote
// processes inherit.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessTree kills every process in the browser's group. It returns os.ErrProcessDone if
// none is left.
func killProcessTree(cmd *exec.Cmd) error {
	err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return os.ErrProcessDone
	}
	return err
}
