package gatherer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TrimToRect keeps at most maxHeight lines of at most maxWidth runes.
func TrimToRect(s string, maxHeight int, maxWidth int) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	cut := len(lines) > maxHeight
	if cut {
		lines = lines[:maxHeight]
	}
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if utf8.RuneCountInString(line) > maxWidth {
			sb.WriteString(string([]rune(line)[:maxWidth]))
			sb.WriteString("[...]")
		} else {
			sb.WriteString(line)
		}
	}
	if cut {
		sb.WriteString("\n[...]")
	}
	return sb.String()
}

// Truncate shortens s to limit runes and marks how long it was.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return fmt.Sprintf("%s... (%d chars total)", string(r[:limit]), len(r))
}
