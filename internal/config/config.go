// Package config loads the toolkit configuration and resolves platform paths.
package config

import "github.com/conn-castle/xiaobait9-tools/internal/assets"

// Config is the parsed config.toml.
type Config struct {
	Schema   SchemaConfig   `toml:"schema"`
	Commands CommandsConfig `toml:"commands"`
	Timeouts TimeoutsConfig `toml:"timeouts"`
	Log      LogConfig      `toml:"log"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// SchemaConfig selects the scheme to install and where.
type SchemaConfig struct {
	ID       string `toml:"id"`
	Resource string `toml:"resource"`
	// TargetDir overrides the Rime user directory; "~" is expanded.
	TargetDir string `toml:"target_dir"`
}

// CommandsConfig names the external programs the toolkit runs.
type CommandsConfig struct {
	Unpack           string   `toml:"unpack"`
	RedeployPrimary  []string `toml:"redeploy_primary"`
	RedeployFallback []string `toml:"redeploy_fallback"`
	Terminal         []string `toml:"terminal"`
}

// TimeoutsConfig holds Go duration strings.
type TimeoutsConfig struct {
	Install  string `toml:"install"`
	Redeploy string `toml:"redeploy"`
	Lock     string `toml:"lock"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig controls metrics export.
type MetricsConfig struct {
	// Textfile is a node_exporter textfile collector path; empty disables export.
	Textfile string `toml:"textfile"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Schema: SchemaConfig{
			ID:       "xiaobai",
			Resource: assets.SchemaArchive,
		},
		Commands: CommandsConfig{
			Unpack:           "tar",
			RedeployPrimary:  []string{"rime_deployer"},
			RedeployFallback: []string{"fcitx5-remote", "-r"},
			Terminal:         []string{"deepin-terminal", "-e"},
		},
		Timeouts: TimeoutsConfig{
			Install:  "2m",
			Redeploy: "1m",
			Lock:     "30s",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}
