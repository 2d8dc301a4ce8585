package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Directory WindowDirectory
	Hotkeys   HotkeyListener
	Elevator  Elevator
	Notifier  Notifier
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("alwaysontop is not supported on %s/%s; supported: windows/amd64, windows/arm64", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/win32/init.go for the Win32 registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
