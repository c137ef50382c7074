package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "pocketllm"

// StoragePaths contains paths for application storage
type StoragePaths struct {
	DatabasePath string
	LogPath      string
}

// GetDefaultStoragePaths returns default storage paths using XDG base directories
func GetDefaultStoragePaths() StoragePaths {
	return StoragePaths{
		DatabasePath: filepath.Join(xdg.StateHome, appName, "pocketllm.db"),
		LogPath:      filepath.Join(xdg.StateHome, appName, "pocketllm.log"),
	}
}

// GetDefaultNotesPath returns the directory notes are saved to
func GetDefaultNotesPath() string {
	return filepath.Join(xdg.UserDirs.Documents, "PocketLLM Notes")
}

// GetUserConfigPath returns the per-user config file path
func GetUserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.json")
}
