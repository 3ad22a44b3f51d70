package render

import "strings"

// Script converts ASCII letters and digits to their Unicode mathematical
// bold script forms. Other characters are kept.
func Script(s string) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c >= 'A' && c <= 'Z':
			return 0x1D4D0 + (c - 'A')
		case c >= 'a' && c <= 'z':
			return 0x1D4EA + (c - 'a')
		case c >= '0' && c <= '9':
			return 0x1D7CE + (c - '0')
		default:
			return c
		}
	}, s)
}
