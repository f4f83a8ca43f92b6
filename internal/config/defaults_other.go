//go:build !windows

package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultScanPaths returns the XDG application directories and the desktop,
// harvesting .desktop entries. Folders that do not exist are left out.
func DefaultScanPaths() []ScanPath {
	var candidates []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	home, homeErr := os.UserHomeDir()
	if dataHome == "" && homeErr == nil {
		dataHome = filepath.Join(home, ".local", "share")
	}
	if dataHome != "" {
		candidates = append(candidates, filepath.Join(dataHome, "applications"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(dataDirs, ":") {
		if d != "" {
			candidates = append(candidates, filepath.Join(d, "applications"))
		}
	}

	if homeErr == nil {
		candidates = append(candidates, filepath.Join(home, "Desktop"))
	}
	return existing(candidates, []string{".desktop"})
}
