//go:build windows

package config

import (
	"os"
	"path/filepath"
)

// DefaultScanPaths returns the Start Menu program folders and the desktop,
// harvesting shortcuts. Folders that do not exist are left out.
func DefaultScanPaths() []ScanPath {
	var candidates []string
	if pd := os.Getenv("ProgramData"); pd != "" {
		candidates = append(candidates, filepath.Join(pd, `Microsoft\Windows\Start Menu\Programs`))
	}
	if ad := os.Getenv("APPDATA"); ad != "" {
		candidates = append(candidates, filepath.Join(ad, `Microsoft\Windows\Start Menu\Programs`))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "Desktop"))
	}
	return existing(candidates, []string{".lnk"})
}
