//go:build !windows
// +build !windows

package core

import (
	"os"
	"os/exec"
	"syscall"
	"time"
)

// setSysProcAttr puts the child in its own process group so that
// interpreters which fork workers can be stopped as a whole.
func setSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminateProcess sends SIGTERM to the child's process group,
// falling back to the child alone.
func terminateProcess(p *os.Process) error {
	if err := syscall.Kill(-p.Pid, syscall.SIGTERM); err != nil {
		return p.Signal(syscall.SIGTERM)
	}
	return nil
}

// reapProcessGroup sends SIGKILL to what is left of the child's process
// group once grace has run out.
func reapProcessGroup(pgid int, grace time.Duration) {
	deadline := time.Now().Add(grace)
	for time.Now().Before(deadline) {
		if syscall.Kill(-pgid, 0) != nil {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	syscall.Kill(-pgid, syscall.SIGKILL)
}
