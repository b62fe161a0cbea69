package compare

import (
	"strings"
	"unicode"
)

// Normalize strips trailing whitespace from every line and drops trailing
// blank lines. Leading and internal whitespace is kept as is.
func Normalize(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}
	end := len(lines)
	for end > 0 && lines[end-1] == "" {
		end--
	}
	return strings.Join(lines[:end], "\n")
}
