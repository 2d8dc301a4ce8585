package update

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Version is a dotted numeric version such as 1.0.2.
type Version []int

// ParseVersion parses a tag like "v1.0.2". Leading non-digit characters are
// stripped; each dot-separated component is read from its leading digits, so
// "1.2.0-rc1" parses as 1.2.0.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimLeftFunc(strings.TrimSpace(s), func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	if trimmed == "" {
		return nil, fmt.Errorf("invalid version %q: no numeric components", s)
	}
	parts := strings.Split(trimmed, ".")
	v := make(Version, 0, len(parts))
	for _, p := range parts {
		end := 0
		for end < len(p) && p[end] >= '0' && p[end] <= '9' {
			end++
		}
		if end == 0 {
			return nil, fmt.Errorf("invalid version %q: component %q is not numeric", s, p)
		}
		n, err := strconv.Atoi(p[:end])
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", s, err)
		}
		v = append(v, n)
		if end < len(p) {
			// A suffix such as "-rc1" ends the numeric part.
			break
		}
	}
	return v, nil
}

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than b.
// The shorter version is padded with zeros, so 1.0 equals 1.0.0.
func Compare(a, b Version) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}
