//go:build windows

package process

import (
	"golang.org/x/sys/windows"
	"os"
	"os/exec"
	"syscall"
)

func TerminateProcess(pid int, _ os.Signal) error {
	if pid == 0 || pid == -1 {
		return nil
	}
	dll, err := windows.LoadDLL("kernel32.dll")
	if err != nil {
		return err
	}
	defer dll.Release()

	f, err := dll.FindProc("AttachConsole")
	if err != nil {
		return err
	}
	r1, _, err := f.Call(uintptr(pid))
	if r1 == 0 && err != syscall.ERROR_ACCESS_DENIED {
		return err
	}

	f, err = dll.FindProc("SetConsoleCtrlHandler")
	if err != nil {
		return err
	}
	r1, _, err = f.Call(0, 1)
	if r1 == 0 {
		return err
	}
	f, err = dll.FindProc("GenerateConsoleCtrlEvent")
	if err != nil {
		return err
	}
	r1, _, err = f.Call(windows.CTRL_BREAK_EVENT, uintptr(pid))
	if r1 == 0 {
		return err
	}
	return nil
}

func setupProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_UNICODE_ENVIRONMENT | windows.CREATE_NEW_PROCESS_GROUP,
	}
	cmd.Cancel = func() error {
		err := TerminateProcess(cmd.Process.Pid, os.Interrupt)
		if err != nil {
			return cmd.Process.Kill()
		}
		return nil
	}
}

func shellCommand(name string, args []string) (string, []string) {
	// cordova is installed as cordova.cmd on Windows, which can only be started through cmd.exe
	shellArgs := []string{"/C", name}
	shellArgs = append(shellArgs, args...)
	return "cmd.exe", shellArgs
}
