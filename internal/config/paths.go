package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/xiaobait9-tools/internal/messages"
)

// AppName names the toolkit's directories under the XDG base directories.
const AppName = "xiaobait9-tools"

// System abstracts the environment lookups needed to resolve paths.
type System interface {
	Getenv(key string) string
	HomeDir() (string, error)
}

// RealSystem implements System using the process environment.
type RealSystem struct{}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// HomeDir returns the user's home directory.
func (RealSystem) HomeDir() (string, error) {
	return homedir.Dir()
}

// Paths holds resolved locations used by the toolkit.
type Paths struct {
	// ConfigPath is the toolkit config file.
	ConfigPath string
	// TargetDir is the default Rime user directory for fcitx5.
	TargetDir string
	// ScriptPath is where the engine installer script is written.
	ScriptPath string
	// LockDir holds per-target install lock files.
	LockDir string
}

// DefaultPaths resolves paths from the XDG base directory variables,
// falling back to the conventional locations under the home directory.
func DefaultPaths(sys System) (Paths, error) {
	if sys == nil {
		sys = RealSystem{}
	}
	home, err := sys.HomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf(messages.ConfigHomeDirFmt, err)
	}
	configHome := xdgDir(sys, "XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataHome := xdgDir(sys, "XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheHome := xdgDir(sys, "XDG_CACHE_HOME", filepath.Join(home, ".cache"))

	return Paths{
		ConfigPath: filepath.Join(configHome, AppName, "config.toml"),
		TargetDir:  filepath.Join(dataHome, "fcitx5", "rime"),
		ScriptPath: filepath.Join(dataHome, AppName, "install-rime.sh"),
		LockDir:    filepath.Join(cacheHome, AppName, "locks"),
	}, nil
}

// xdgDir returns the variable's value when it is an absolute path, else fallback.
func xdgDir(sys System, key string, fallback string) string {
	value := strings.TrimSpace(sys.Getenv(key))
	if value == "" || !filepath.IsAbs(value) {
		return fallback
	}
	return value
}

// ResolveTargetDir picks the install directory: flag, then config, then default.
// A leading "~" is expanded.
func ResolveTargetDir(flag string, cfg *Config, paths Paths) (string, error) {
	candidate := strings.TrimSpace(flag)
	if candidate == "" && cfg != nil {
		candidate = strings.TrimSpace(cfg.Schema.TargetDir)
	}
	if candidate == "" {
		return paths.TargetDir, nil
	}
	expanded, err := homedir.Expand(candidate)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandPathFmt, candidate, err)
	}
	return filepath.Clean(expanded), nil
}
