//go:build windows

package win32

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/windows"
)

// Elevator implements platform.Elevator with the process token and the
// "runas" shell verb.
type Elevator struct{}

// NewElevator creates a Win32 elevator.
func NewElevator() *Elevator {
	return &Elevator{}
}

func (e *Elevator) IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

func (e *Elevator) Relaunch(args []string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}

	quoted := make([]string, 0, len(args))
	for _, a := range args {
		quoted = append(quoted, windows.EscapeArg(a))
	}

	verb, _ := windows.UTF16PtrFromString("runas")
	file, err := windows.UTF16PtrFromString(exe)
	if err != nil {
		return err
	}
	params, err := windows.UTF16PtrFromString(strings.Join(quoted, " "))
	if err != nil {
		return err
	}
	dir, err := windows.UTF16PtrFromString(cwd)
	if err != nil {
		return err
	}

	if err := windows.ShellExecute(0, verb, file, params, dir, swShowNormal); err != nil {
		return fmt.Errorf("relaunch elevated: %w", err)
	}
	return nil
}
