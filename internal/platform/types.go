package platform

import (
	"errors"
	"strings"

	"github.com/mj1618/alwaysontop/internal/model"
)

// ErrInvalidWindow is returned when a handle no longer refers to a window.
var ErrInvalidWindow = errors.New("invalid window handle")

// FilterTitled drops windows whose title is empty or whitespace only.
func FilterTitled(windows []model.Window) []model.Window {
	out := make([]model.Window, 0, len(windows))
	for _, w := range windows {
		if strings.TrimSpace(w.Title) == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}

// MatchTitle returns windows whose title equals title. When none match
// exactly, it falls back to a case-insensitive substring match.
func MatchTitle(windows []model.Window, title string) []model.Window {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	var exact []model.Window
	for _, w := range windows {
		if w.Title == title {
			exact = append(exact, w)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	lower := strings.ToLower(title)
	var partial []model.Window
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), lower) {
			partial = append(partial, w)
		}
	}
	return partial
}

// ExcludePIDs drops windows owned by any of pids.
func ExcludePIDs(windows []model.Window, pids []int) []model.Window {
	if len(pids) == 0 {
		return windows
	}
	skip := make(map[int]bool, len(pids))
	for _, p := range pids {
		skip[p] = true
	}
	out := make([]model.Window, 0, len(windows))
	for _, w := range windows {
		if skip[w.PID] {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Titles returns the window titles in order.
func Titles(windows []model.Window) []string {
	out := make([]string, 0, len(windows))
	for _, w := range windows {
		out = append(out, w.Title)
	}
	return out
}
