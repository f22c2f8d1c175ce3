// Package storage keeps the search journal: one record per protocol command
// and per finished search, stored in BadgerDB.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "bogfish"

// DataDir returns the platform-specific data directory, creating it if
// needed.
//   - macOS: ~/Library/Application Support/bogfish/
//   - Linux: $XDG_DATA_HOME/bogfish/ or ~/.local/share/bogfish/
//   - Windows: %APPDATA%/bogfish/
func DataDir() (string, error) {
	base, err := userDataBase()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// JournalDir returns the directory holding the journal database.
func JournalDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, "journal"))
}

func userDataBase() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil

	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	}

	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
