// Package hotkey parses global hotkey bindings such as "alt+esc".
// Modifier and key values use the Win32 MOD_* and virtual-key codes so a
// Binding can be handed to RegisterHotKey unchanged.
package hotkey

import (
	"fmt"
	"strings"
)

// Modifier is a bit set of modifier keys.
type Modifier uint32

const (
	ModAlt     Modifier = 0x0001
	ModControl Modifier = 0x0002
	ModShift   Modifier = 0x0004
	ModWin     Modifier = 0x0008
)

// Key is a virtual-key code.
type Key uint32

const (
	KeyEscape Key = 0x1B
	KeySpace  Key = 0x20
	Key0      Key = 0x30
	KeyA      Key = 0x41
	KeyF1     Key = 0x70
)

// DefaultUnpin are the bindings that release the pinned window.
var DefaultUnpin = []string{"alt+esc", "alt+0"}

// Binding is a parsed hotkey.
type Binding struct {
	Spec      string
	Modifiers Modifier
	Key       Key
}

func (b Binding) String() string {
	return b.Spec
}

// Label returns a display form such as "Alt+Esc".
func (b Binding) Label() string {
	parts := strings.Split(b.Spec, "+")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "+")
}

var modifierNames = map[string]Modifier{
	"alt":     ModAlt,
	"ctrl":    ModControl,
	"control": ModControl,
	"shift":   ModShift,
	"win":     ModWin,
	"super":   ModWin,
}

var keyNames = map[string]Key{
	"esc":    KeyEscape,
	"escape": KeyEscape,
	"space":  KeySpace,
}

// Parse converts "mod+mod+key" into a Binding. At least one modifier is required.
func Parse(s string) (Binding, error) {
	spec := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if spec == "" {
		return Binding{}, fmt.Errorf("empty hotkey")
	}
	parts := strings.Split(spec, "+")
	b := Binding{Spec: spec}
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierNames[p]
		if !ok {
			return Binding{}, fmt.Errorf("unknown modifier %q in hotkey %q", p, s)
		}
		b.Modifiers |= m
	}
	if b.Modifiers == 0 {
		return Binding{}, fmt.Errorf("hotkey %q needs at least one modifier (alt, ctrl, shift, win)", s)
	}
	key, err := parseKey(parts[len(parts)-1])
	if err != nil {
		return Binding{}, fmt.Errorf("hotkey %q: %w", s, err)
	}
	b.Key = key
	return b, nil
}

// ParseAll parses every spec, failing on the first invalid one.
func ParseAll(specs []string) ([]Binding, error) {
	out := make([]Binding, 0, len(specs))
	for _, s := range specs {
		b, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Hint renders bindings as "Alt+Esc or Alt+0".
func Hint(bindings []Binding) string {
	labels := make([]string, 0, len(bindings))
	for _, b := range bindings {
		labels = append(labels, b.Label())
	}
	return strings.Join(labels, " or ")
}

func parseKey(p string) (Key, error) {
	if k, ok := keyNames[p]; ok {
		return k, nil
	}
	if len(p) == 1 {
		c := p[0]
		switch {
		case c >= '0' && c <= '9':
			return Key0 + Key(c-'0'), nil
		case c >= 'a' && c <= 'z':
			return KeyA + Key(c-'a'), nil
		}
	}
	if len(p) >= 2 && p[0] == 'f' {
		var n int
		if _, err := fmt.Sscanf(p[1:], "%d", &n); err == nil && n >= 1 && n <= 12 && fmt.Sprint(n) == p[1:] {
			return KeyF1 + Key(n-1), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", p)
}
