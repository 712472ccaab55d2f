// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package xdg resolves XDG Base Directory paths for credcheck.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "credcheck"

// ConfigFileName is the default config file name inside ConfigDir.
const ConfigFileName = "config.yaml"

// ConfigDir returns the XDG config directory for credcheck.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// DefaultConfigFile returns the default config file path if a regular file
// exists there, or "" otherwise.
func DefaultConfigFile() string {
	path := ConfigFile()
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return path
}
