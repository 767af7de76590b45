//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// SetGroup is a no-op on Windows; taskkill /T handles the process tree.
func SetGroup(cmd *exec.Cmd) {}

// KillGroup kills a process and all its children using taskkill.
// /F = force kill, /T = terminate child processes (tree kill).
func KillGroup(pid int) {
	// Best-effort cleanup; the caller's Process.Kill provides fallback
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
