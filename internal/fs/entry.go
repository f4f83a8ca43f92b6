package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Entry represents a single file or directory on disk.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// IsVisible reports whether the entry is neither hidden nor a system entry.
func (e Entry) IsVisible() bool {
	return !IsHidden(e.FullPath, e.Name) && !IsSystem(e.FullPath, e.Name)
}

// ReadDir lists dir in name order. Names are NFC-normalized, symlinks report
// the kind of their target, and protected platform entries are left out.
func ReadDir(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		rawName := e.Name()
		fullPath := filepath.Join(dir, rawName)

		if ShouldHideFromListing(fullPath, rawName) {
			continue
		}

		isDir := e.IsDir()
		isSymlink := e.Type()&os.ModeSymlink != 0
		if isSymlink {
			if targetInfo, err := os.Stat(fullPath); err == nil {
				isDir = targetInfo.IsDir()
			}
		}

		entries = append(entries, Entry{
			Name:      norm.NFC.String(rawName),
			FullPath:  fullPath,
			IsDir:     isDir,
			IsSymlink: isSymlink,
		})
	}
	return entries, nil
}
