package report

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Caps describes what the output terminal can render.
type Caps struct {
	Unicode bool
	Color   bool
	Width   int
}

const defaultWidth = 100

// ASCII is the capability set of a dumb terminal or a pipe.
var ASCII = Caps{Width: defaultWidth}

// DetectCaps inspects the locale and stdout. forceASCII comes from --ascii.
func DetectCaps(forceASCII bool) Caps {
	caps := Caps{Width: defaultWidth}
	fd := int(os.Stdout.Fd())
	tty := term.IsTerminal(fd)
	if tty {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			caps.Width = w
		}
	}
	caps.Color = tty && os.Getenv("NO_COLOR") == ""
	caps.Unicode = !forceASCII && unicodeLocale(os.Getenv)
	return caps
}

// unicodeLocale follows the POSIX precedence LC_ALL > LC_CTYPE > LANG.
func unicodeLocale(getenv func(string) string) bool {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := getenv(key)
		if v == "" {
			continue
		}
		v = strings.ToUpper(v)
		return strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8")
	}
	return false
}
