//go:build windows

package win32

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/mj1618/alwaysontop/internal/model"
	"github.com/mj1618/alwaysontop/internal/platform"
	"golang.org/x/sys/windows"
)

// Directory implements platform.WindowDirectory over user32.
type Directory struct{}

// NewDirectory creates a Win32 window directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// Callbacks are a finite resource, so EnumWindows shares a single one and
// collects into enumSink under enumMu.
var (
	enumMu       sync.Mutex
	enumSink     []uintptr
	enumCallback = windows.NewCallback(func(hwnd uintptr, _ uintptr) uintptr {
		enumSink = append(enumSink, hwnd)
		return 1
	})
)

func enumTopLevel() ([]uintptr, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumSink = enumSink[:0]
	r, _, err := procEnumWindows.Call(enumCallback, 0)
	if r == 0 {
		return nil, fmt.Errorf("USER32.EnumWindows returned FALSE: %w", err)
	}
	return append([]uintptr(nil), enumSink...), nil
}

func (d *Directory) ListWindows() ([]model.Window, error) {
	handles, err := enumTopLevel()
	if err != nil {
		return nil, err
	}
	names, _ := platform.ProcessNames()

	wins := make([]model.Window, 0, len(handles))
	for _, hwnd := range handles {
		if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
			continue
		}
		title := windowText(hwnd)
		if title == "" {
			continue
		}
		var pid uint32
		procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
		iconic, _, _ := procIsIconic.Call(hwnd)

		wins = append(wins, model.Window{
			Title:     title,
			Handle:    model.Handle(hwnd),
			PID:       int(pid),
			App:       names[int(pid)],
			Minimized: iconic != 0,
		})
	}
	return platform.FilterTitled(wins), nil
}

func (d *Directory) FindByTitle(title string) ([]model.Window, error) {
	wins, err := d.ListWindows()
	if err != nil {
		return nil, err
	}
	return platform.MatchTitle(wins, title), nil
}

func (d *Directory) IsMinimized(h model.Handle) (bool, error) {
	if !d.IsWindow(h) {
		return false, platform.ErrInvalidWindow
	}
	r, _, _ := procIsIconic.Call(uintptr(h))
	return r != 0, nil
}

func (d *Directory) Restore(h model.Handle) error {
	if !d.IsWindow(h) {
		return platform.ErrInvalidWindow
	}
	// ShowWindow returns the previous visibility, not success.
	procShowWindow.Call(uintptr(h), swRestore)
	return nil
}

func (d *Directory) SetTopmost(h model.Handle, on bool) error {
	insertAfter := hwndNoTopmost
	if on {
		insertAfter = hwndTopmost
	}
	r, _, err := procSetWindowPos.Call(
		uintptr(h),
		insertAfter,
		0,
		0,
		0,
		0,
		swpNoMove|swpNoSize|swpNoActivate)
	if r == 0 {
		var errno syscall.Errno
		if errors.As(err, &errno) && errno == errorInvalidWindowHandle {
			return fmt.Errorf("SetWindowPos %s: %w", h, platform.ErrInvalidWindow)
		}
		return fmt.Errorf("SetWindowPos %s: %w", h, err)
	}
	return nil
}

func (d *Directory) IsWindow(h model.Handle) bool {
	if h == 0 {
		return false
	}
	r, _, _ := procIsWindow.Call(uintptr(h))
	return r != 0
}

func windowText(hwnd uintptr) string {
	n, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}
