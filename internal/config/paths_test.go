package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSystem struct {
	env     map[string]string
	home    string
	homeErr error
}

func (f fakeSystem) Getenv(key string) string {
	return f.env[key]
}

func (f fakeSystem) HomeDir() (string, error) {
	return f.home, f.homeErr
}

func TestDefaultPaths_HomeFallbacks(t *testing.T) {
	paths, err := DefaultPaths(fakeSystem{home: "/home/u"})
	require.NoError(t, err)

	assert.Equal(t, Paths{
		ConfigPath: "/home/u/.config/xiaobait9-tools/config.toml",
		TargetDir:  "/home/u/.local/share/fcitx5/rime",
		ScriptPath: "/home/u/.local/share/xiaobait9-tools/install-rime.sh",
		LockDir:    "/home/u/.cache/xiaobait9-tools/locks",
	}, paths)
}

func TestDefaultPaths_XDGOverrides(t *testing.T) {
	sys := fakeSystem{home: "/home/u", env: map[string]string{
		"XDG_CONFIG_HOME": "/cfg",
		"XDG_DATA_HOME":   "/data",
		"XDG_CACHE_HOME":  "relative/ignored",
	}}
	paths, err := DefaultPaths(sys)
	require.NoError(t, err)

	assert.Equal(t, "/cfg/xiaobait9-tools/config.toml", paths.ConfigPath)
	assert.Equal(t, "/data/fcitx5/rime", paths.TargetDir)
	assert.Equal(t, "/data/xiaobait9-tools/install-rime.sh", paths.ScriptPath)
	assert.Equal(t, "/home/u/.cache/xiaobait9-tools/locks", paths.LockDir)
}

func TestDefaultPaths_HomeError(t *testing.T) {
	_, err := DefaultPaths(fakeSystem{homeErr: errors.New("no home")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot determine home directory")
}

func TestResolveTargetDir(t *testing.T) {
	paths := Paths{TargetDir: "/default/rime"}
	cfg := Default()

	got, err := ResolveTargetDir("", &cfg, paths)
	require.NoError(t, err)
	assert.Equal(t, "/default/rime", got)

	cfg.Schema.TargetDir = "/from/config/"
	got, err = ResolveTargetDir("", &cfg, paths)
	require.NoError(t, err)
	assert.Equal(t, "/from/config", got)

	got, err = ResolveTargetDir("/from/flag", &cfg, paths)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", got)
}

func TestResolveTargetDir_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	got, err := ResolveTargetDir("~/rime", nil, Paths{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "rime"), got)
}
