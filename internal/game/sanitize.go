package game

import "strings"

// Sanitize strips control and escape characters from user- or server-
// supplied text before it reaches the terminal. Newlines and tabs collapse
// to single spaces so a crafted task description or chat reply cannot break
// row layout or smuggle ANSI sequences into the view.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f):
			return -1
		}
		return r
	}, s)
}
