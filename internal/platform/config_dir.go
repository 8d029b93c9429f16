package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DataDir returns the per-user directory for appName's settings. It falls
// back to ~/.config when the OS does not report a config directory.
func DataDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, dirName(appName)), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return filepath.Join(homeDir, ".config", dirName(appName)), nil
}

func dirName(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "dialtimer"
	}
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
