// Package config resolves shuffle's configuration directory and the
// transformation defaults stored there.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used under the platform config root.
const appName = "shuffle"

// Dir returns the shuffle configuration directory.
//
// Resolution:
//   - $SHUFFLE_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/shuffle if set (any platform)
//   - %AppData%/shuffle on Windows
//   - ~/.config/shuffle elsewhere
func Dir() string {
	if dir := os.Getenv("SHUFFLE_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// Path returns the default config file location, or "" when Dir is unknown.
func Path() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// EnvFiles lists the env files loaded at startup, highest priority first.
func EnvFiles() []string {
	files := []string{".env.local", ".env"}
	if dir := Dir(); dir != "" {
		files = append(files, filepath.Join(dir, "env"))
	}
	return files
}
