// Package win32 provides the Win32 platform backend: window enumeration and
// z-order via user32, global hotkeys, UAC elevation and message boxes.
// On other operating systems the package is empty and platform.NewProvider
// reports platform.ErrUnsupported.
package win32
