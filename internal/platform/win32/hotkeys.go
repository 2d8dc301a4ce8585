//go:build windows

package win32

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/mj1618/alwaysontop/internal/hotkey"
	"golang.org/x/sys/windows"
	"pkt.systems/pslog"
)

// ErrNoHotkeys is returned when the OS refused every binding.
var ErrNoHotkeys = errors.New("no hotkeys could be registered")

// HotkeyListener implements platform.HotkeyListener with RegisterHotKey.
type HotkeyListener struct{}

// NewHotkeyListener creates a Win32 hotkey listener.
func NewHotkeyListener() *HotkeyListener {
	return &HotkeyListener{}
}

// Listen registers bindings on a dedicated OS thread and pumps its message
// queue. WM_HOTKEY is posted to the registering thread, so registration and
// GetMessageW must share one locked thread.
func (l *HotkeyListener) Listen(ctx context.Context, bindings []hotkey.Binding, fn func(hotkey.Binding)) error {
	log := pslog.Ctx(ctx)

	type started struct {
		tid uint32
		err error
	}
	startc := make(chan started, 1)
	donec := make(chan struct{})

	go func() {
		defer close(donec)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		registered := make(map[uintptr]hotkey.Binding, len(bindings))
		for i, b := range bindings {
			id := uintptr(i + 1)
			r, _, err := procRegisterHotKey.Call(0, id, uintptr(b.Modifiers)|modNoRepeat, uintptr(b.Key))
			if r == 0 {
				if errors.Is(err, errorHotkeyAlreadyTaken) {
					log.Warn("hotkey already taken", "hotkey", b.Spec)
				} else {
					log.Warn("hotkey registration failed", "hotkey", b.Spec, "err", err)
				}
				continue
			}
			registered[id] = b
			log.Debug("hotkey registered", "hotkey", b.Spec)
		}
		defer func() {
			for id := range registered {
				procUnregisterHotKey.Call(0, id)
			}
		}()

		if len(registered) == 0 {
			startc <- started{err: ErrNoHotkeys}
			return
		}
		startc <- started{tid: windows.GetCurrentThreadId()}

		var m msg
		for {
			r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			// 0 is WM_QUIT, -1 is an error.
			if int32(r) <= 0 {
				return
			}
			if m.message != wmHotkey {
				continue
			}
			if b, ok := registered[m.wParam]; ok {
				log.Debug("hotkey pressed", "hotkey", b.Spec)
				fn(b)
			}
		}
	}()

	st := <-startc
	if st.err != nil {
		<-donec
		return st.err
	}

	select {
	case <-ctx.Done():
		r, _, err := procPostThreadMessageW.Call(uintptr(st.tid), wmQuit, 0, 0)
		if r == 0 {
			return fmt.Errorf("stop hotkey listener: %w", err)
		}
		<-donec
		return nil
	case <-donec:
		return fmt.Errorf("hotkey message loop exited unexpectedly")
	}
}
