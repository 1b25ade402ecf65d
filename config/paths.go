// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for nestedjson configuration and data.

package config

import (
	"os"
	"path/filepath"
)

const appDirName = "nestedjson"

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appDirName), nil
}

// systemConfigPathLocked resolves the config file path. Callers hold mu.
func systemConfigPathLocked() (string, error) {
	if override != "" {
		return override, nil
	}
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

// Path returns the config file location in use.
func Path() (string, error) {
	mu.RLock()
	defer mu.RUnlock()
	return systemConfigPathLocked()
}

// DataDir returns the directory for editor data such as the field store.
// It honours XDG_DATA_HOME and falls back to ~/.local/share.
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appDirName), nil
}
