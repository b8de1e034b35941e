//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group of pid, taking the
// browser's renderer and GPU children down with it. Errors are ignored:
// the launcher's own Kill runs afterwards.
func KillProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
