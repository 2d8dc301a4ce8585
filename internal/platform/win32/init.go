//go:build windows

package win32

import "github.com/mj1618/alwaysontop/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Directory: NewDirectory(),
			Hotkeys:   NewHotkeyListener(),
			Elevator:  NewElevator(),
			Notifier:  NewNotifier(),
		}, nil
	}
}
