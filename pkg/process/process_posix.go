//go:build !windows

package process

import (
	"golang.org/x/sys/unix"
	"os"
	"os/exec"
)

func procAttrWithProcessGroup() *unix.SysProcAttr {
	return &unix.SysProcAttr{Setpgid: true}
}

// TerminateProcess sends signal to the process group of pid if pid leads its own group,
// otherwise to pid only.
func TerminateProcess(pid int, signal os.Signal) error {
	if pid == 0 || pid == -1 {
		return nil
	}
	pgid, err := unix.Getpgid(pid)
	if err != nil {
		return err
	}

	if pgid == pid {
		pid = -1 * pid
	}

	target, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return target.Signal(signal)
}

func setupProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = procAttrWithProcessGroup()
	cmd.Cancel = func() error {
		return TerminateProcess(cmd.Process.Pid, unix.SIGTERM)
	}
}

func shellCommand(name string, args []string) (string, []string) {
	// "$0" "$@" keeps every argument a separate word, nothing is interpolated into the script
	shellArgs := []string{"-c", `exec "$0" "$@"`, name}
	shellArgs = append(shellArgs, args...)
	return "/bin/sh", shellArgs
}
