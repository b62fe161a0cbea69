// Package xdg resolves configuration locations following the XDG Base
// Directory layout.
package xdg

import (
	"os"
	"path/filepath"
)

// Dirs holds the resolved configuration base directories.
type Dirs struct {
	configHome string
	configDirs []string
}

// New resolves directories from the process environment.
func New() *Dirs {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return FromEnv(os.Getenv, home)
}

// FromEnv resolves directories using getenv and the given home directory.
func FromEnv(getenv func(string) string, home string) *Dirs {
	d := &Dirs{}

	d.configHome = getenv("XDG_CONFIG_HOME")
	if d.configHome == "" && home != "" {
		d.configHome = filepath.Join(home, ".config")
	}

	if env := getenv("XDG_CONFIG_DIRS"); env != "" {
		d.configDirs = filepath.SplitList(env)
	} else {
		d.configDirs = []string{"/etc/xdg"}
	}
	return d
}

// ConfigHome returns the base directory for user-specific configuration.
func (d *Dirs) ConfigHome() string {
	return d.configHome
}

// ConfigDirs returns the preference-ordered configuration base directories.
func (d *Dirs) ConfigDirs() []string {
	if d.configHome == "" {
		return d.configDirs
	}
	return append([]string{d.configHome}, d.configDirs...)
}

// AppConfigDir returns the application-specific config directory.
func (d *Dirs) AppConfigDir(app string) string {
	if d.configHome == "" {
		return ""
	}
	return filepath.Join(d.configHome, app)
}

// FindConfig returns the first existing app/name file across ConfigDirs.
func (d *Dirs) FindConfig(app, name string) (string, bool) {
	for _, base := range d.ConfigDirs() {
		p := filepath.Join(base, app, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, true
		}
	}
	return "", false
}
