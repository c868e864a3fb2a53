//go:build !windows

// Package process terminates the browser process tree left behind by a print job.
package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, taking
// Chrome's renderer and GPU helpers down with it.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
