package config

import (
	"os"
	"path/filepath"
)

// Environment variables that override default locations.
const (
	EnvConfigPath = "CLRSYNC_CONFIG_PATH"
	EnvDataDir    = "CLRSYNC_DATA_DIR"
)

// appName names the per-user directories.
const appName = "clrsync"

// systemDataDirs are searched in order for the bundled defaults.
var systemDataDirs = []string{
	"/usr/share/clrsync",
	"/usr/local/share/clrsync",
}

// UserConfigDir returns $XDG_CONFIG_HOME/clrsync, or ~/.config/clrsync.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, appName)
}

// DefaultConfigPath returns the config file path. CLRSYNC_CONFIG_PATH takes
// precedence over the user config directory.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.toml")
}

// StateDir returns $XDG_STATE_HOME/clrsync, or ~/.local/state/clrsync.
func StateDir() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, appName)
}

// HistoryPath returns the path to the apply history JSONL file.
func HistoryPath() string {
	return filepath.Join(StateDir(), "history.jsonl")
}

// DataDir returns the system-wide defaults directory, or "" when none is
// installed. CLRSYNC_DATA_DIR takes precedence.
func DataDir() string {
	if d := os.Getenv(EnvDataDir); d != "" {
		return d
	}
	for _, d := range systemDataDirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			return d
		}
	}
	return ""
}
