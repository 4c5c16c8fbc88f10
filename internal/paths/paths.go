// Package paths resolves configuration and data directory locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// CWD-relative directory names per quill layout.
const (
	DefaultConfigDirName = ".quill"
	DefaultDataDirName   = ".quill-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "QUILL_CONFIG_DIR"
	EnvDataDir   = "QUILL_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/quill (fallback ~/.config/quill)
// macOS:   ~/Library/Application Support/quill
// Windows: %APPDATA%/quill
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "quill"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "quill"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "quill"), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/quill (fallback ~/.local/share/quill)
// macOS:   ~/Library/Application Support/quill
// Windows: %APPDATA%/quill
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "quill"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "quill"), nil
	default:
		// macOS and Windows: same as config dir.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "quill"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > QUILL_CONFIG_DIR env > DefaultConfigDir().
//
// If flag is non-empty it wins. Otherwise the QUILL_CONFIG_DIR environment
// variable is checked. If neither is set, the platform default is returned.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := envDir(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > QUILL_DATA_DIR env > $(CWD)/.quill-db.
// DefaultDataDir() is not consulted.
//
// The CWD-relative default ($(CWD)/.quill-db) is preserved as the primary
// mode when no override is active, matching existing behavior per the task
// design decisions.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := envDir(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	// CWD-relative default preserves current behavior.
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// envDir reads name through a scratch Viper instance with AutomaticEnv
// rather than os.Getenv directly, so directory overrides go through the
// same config layer (github.com/spf13/viper) quillctl's own config.go uses
// for every other setting, instead of a second, hand-rolled env lookup
// path living alongside it.
func envDir(name string) string {
	v := viper.New()
	v.AutomaticEnv()
	return v.GetString(name)
}
