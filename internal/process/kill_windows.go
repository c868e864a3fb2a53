//go:build windows

// Package process terminates the browser process tree left behind by a print job.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup force-kills pid and its children with taskkill.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is numeric
}
