package utils

import (
	"os"
	"path/filepath"
)

const appDir = "fittrack"

// ConfigDir returns ~/.config/fittrack, creating it when missing.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", appDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
