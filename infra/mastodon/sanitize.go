package mastodon

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// sanitizeForTerminal removes escape sequences and control characters from
// server-supplied text before it can reach a terminal. Newlines and tabs
// survive.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
