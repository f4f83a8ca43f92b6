// Package index discovers launchable entries under configured directories
// and keeps the last scan in a versioned cache file.
package index

import (
	"strings"

	"github.com/kk-code-lab/rlaunch/internal/query"
)

// Entry is one launchable item. TargetPath is what gets opened and is the
// key history is recorded under.
type Entry struct {
	Name       string
	TargetPath string
	IsFolder   bool
}

// ScanRule describes one directory tree to harvest.
type ScanRule struct {
	Path           string
	Extensions     []string
	IncludeFolders bool
}

// extensionSet returns the rule's extensions lowercased with a leading dot.
func (r ScanRule) extensionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.Extensions))
	for _, ext := range r.Extensions {
		if ext = NormalizeExtension(ext); ext != "" {
			set[ext] = struct{}{}
		}
	}
	return set
}

// NormalizeExtension lowercases ext and adds the leading dot when missing.
// Blank input yields "".
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return query.Lower(ext)
}

// dedupKey is the identity used to drop repeated names within one scan.
// Folders live in their own namespace so "Tools" the folder and "tools.exe"
// can coexist.
func dedupKey(e Entry) string {
	name := query.Lower(e.Name)
	if e.IsFolder {
		return "folder:" + name
	}
	return name
}

// Equal reports whether two entry sequences are identical position by position.
func Equal(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
