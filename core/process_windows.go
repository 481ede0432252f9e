//go:build windows
// +build windows

package core

import (
	"os"
	"os/exec"
	"time"

	"github.com/shirou/gopsutil/process"
)

func setSysProcAttr(cmd *exec.Cmd) {}

// terminateProcess kills the child's descendants, then the child.
// Windows has no SIGTERM to deliver to a process group.
func terminateProcess(p *os.Process) error {
	if parent, err := process.NewProcess(int32(p.Pid)); err == nil {
		if children, err := parent.Children(); err == nil {
			for _, child := range children {
				child.Kill()
			}
		}
	}
	return p.Kill()
}

// reapProcessGroup has nothing left to do: terminateProcess already
// killed the descendants outright.
func reapProcessGroup(pgid int, grace time.Duration) {}
