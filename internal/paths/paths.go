// Package paths resolves where the rowan CLI keeps its configuration and
// data. Explicit flags win over environment variables, which win over the
// platform convention.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "rowan"

// DefaultDataDirName is the CWD-relative data directory used when nothing
// else is configured.
const DefaultDataDirName = ".rowan-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "ROWAN_CONFIG_DIR"
	EnvDataDir   = "ROWAN_DATA_DIR"
)

// DefaultConfigDir returns the platform default configuration directory:
// $XDG_CONFIG_HOME/rowan (falling back to ~/.config/rowan) on Linux, the
// os.UserConfigDir convention elsewhere.
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	return userConfigDir()
}

// DefaultDataDir returns the platform default data directory:
// $XDG_DATA_HOME/rowan (falling back to ~/.local/share/rowan) on Linux, the
// os.UserConfigDir convention elsewhere.
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", ".local", "share")
	}
	return userConfigDir()
}

// xdgDir resolves an XDG base directory, falling back to the conventional
// home-relative location when the variable is unset.
func xdgDir(envVar string, fallback ...string) (string, error) {
	if base := os.Getenv(envVar); base != "" {
		return filepath.Join(base, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	parts = append(parts, appDirName)
	return filepath.Join(parts...), nil
}

func userConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName), nil
}

// ResolveConfigDir returns the configuration directory: the flag if set,
// then ROWAN_CONFIG_DIR, then the platform default. Relative overrides are
// made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory: the flag if set, then the
// config file value, then ROWAN_DATA_DIR, then $(CWD)/.rowan-db. Relative
// overrides are made absolute.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
