// Package config resolves moss settings and the configuration directory.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the moss configuration directory.
//
// Resolution:
//   - $MOSS_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/moss if set (respects XDG on any platform)
//   - %AppData%/moss on Windows
//   - ~/.config/moss on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("MOSS_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "moss")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "moss")
		}
	}

	// macOS and Linux: ~/.config/moss
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "moss")
}
