package xdg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/programme-lv/neetrunner/internal/xdg"
)

func TestDefaults(t *testing.T) {
	d := xdg.FromEnv(func(string) string { return "" }, "/home/u")
	assert.Equal(t, "/home/u/.config", d.ConfigHome())
	assert.Equal(t, []string{"/home/u/.config", "/etc/xdg"}, d.ConfigDirs())
	assert.Equal(t, "/home/u/.config/neetrunner", d.AppConfigDir("neetrunner"))
}

func TestFindConfig(t *testing.T) {
	home, sys := t.TempDir(), t.TempDir()
	env := map[string]string{"XDG_CONFIG_HOME": home, "XDG_CONFIG_DIRS": sys}
	d := xdg.FromEnv(func(k string) string { return env[k] }, "")

	_, ok := d.FindConfig("neetrunner", "config.toml")
	assert.False(t, ok)

	sysFile := filepath.Join(sys, "neetrunner", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(sysFile), 0o755))
	require.NoError(t, os.WriteFile(sysFile, nil, 0o644))
	p, ok := d.FindConfig("neetrunner", "config.toml")
	require.True(t, ok)
	assert.Equal(t, sysFile, p)

	userFile := filepath.Join(home, "neetrunner", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(userFile), 0o755))
	require.NoError(t, os.WriteFile(userFile, nil, 0o644))
	p, _ = d.FindConfig("neetrunner", "config.toml")
	assert.Equal(t, userFile, p)
}
