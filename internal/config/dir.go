// Package config provides configuration locations and the optional project
// configuration file for specenv.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the specenv global configuration directory.
//
// Resolution:
//   - $SPECENV_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/specenv if set
//   - %AppData%/specenv on Windows
//   - ~/.config/specenv on macOS and Linux
func Dir() string {
	if dir := os.Getenv("SPECENV_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "specenv")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "specenv")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "specenv")
}
