//go:build windows

package win32

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// Notifier implements platform.Notifier with MessageBoxW and ShellExecute.
type Notifier struct{}

// NewNotifier creates a Win32 notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Info(title, message string) {
	messageBox(title, message, mbOK|mbIconInformation|mbTopmost)
}

func (n *Notifier) Warn(title, message string) {
	messageBox(title, message, mbOK|mbIconWarning|mbTopmost)
}

func (n *Notifier) Confirm(title, message string) bool {
	return messageBox(title, message, mbYesNo|mbIconQuestion|mbTopmost) == idYes
}

func (n *Notifier) OpenURL(url string) error {
	verb, _ := windows.UTF16PtrFromString("open")
	target, err := windows.UTF16PtrFromString(url)
	if err != nil {
		return err
	}
	if err := windows.ShellExecute(0, verb, target, nil, nil, swShowNormal); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	return nil
}

func messageBox(title, message string, flags uint32) int32 {
	t, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0
	}
	m, err := windows.UTF16PtrFromString(message)
	if err != nil {
		return 0
	}
	ret, _ := windows.MessageBox(0, m, t, flags)
	return ret
}
