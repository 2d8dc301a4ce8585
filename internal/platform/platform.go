package platform

import (
	"context"

	"github.com/mj1618/alwaysontop/internal/hotkey"
	"github.com/mj1618/alwaysontop/internal/model"
)

// WindowDirectory enumerates top-level windows and controls their z-order.
type WindowDirectory interface {
	// ListWindows returns visible top-level windows with a non-blank title.
	ListWindows() ([]model.Window, error)

	// FindByTitle resolves a title to zero or more windows, exact matches first.
	FindByTitle(title string) ([]model.Window, error)

	IsMinimized(h model.Handle) (bool, error)
	Restore(h model.Handle) error

	// SetTopmost sets or clears "always on top" without moving or resizing.
	SetTopmost(h model.Handle, on bool) error

	// IsWindow reports whether h still refers to a live window.
	IsWindow(h model.Handle) bool
}

// HotkeyListener registers global hotkeys.
type HotkeyListener interface {
	// Listen registers bindings and calls fn for each press until ctx is done.
	// Bindings the OS refuses are skipped; Listen fails only if none register.
	Listen(ctx context.Context, bindings []hotkey.Binding, fn func(hotkey.Binding)) error
}

// Elevator detects and requests administrative privileges.
type Elevator interface {
	IsElevated() bool
	// Relaunch starts the current executable elevated with args.
	// The caller is expected to exit afterwards.
	Relaunch(args []string) error
}

// Notifier shows modal messages and opens web pages.
type Notifier interface {
	Info(title, message string)
	Warn(title, message string)
	Confirm(title, message string) bool
	OpenURL(url string) error
}
