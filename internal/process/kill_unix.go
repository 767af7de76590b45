//go:build !windows

// Package process provides subprocess group management for external
// renderer invocations.
package process

import (
	"os/exec"
	"syscall"
)

// SetGroup places the command in its own process group so KillGroup can
// reach its children.
func SetGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillGroup kills a process and all its children by sending SIGKILL to the
// process group (negative PID).
func KillGroup(pid int) {
	// Best-effort cleanup; the caller's Process.Kill provides fallback
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
