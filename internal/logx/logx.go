package logx

import (
	"github.com/mj1618/alwaysontop/internal/model"
	"pkt.systems/pslog"
)

// WithWindow annotates the logger with the window title and handle when set.
func WithWindow(log pslog.Logger, title string, h model.Handle) pslog.Logger {
	if title != "" {
		log = log.With("window", title)
	}
	if h != 0 {
		log = log.With("hwnd", h.String())
	}
	return log
}
