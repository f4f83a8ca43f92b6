//go:build !windows

package fs

// IsHidden checks if a file is hidden on this platform (Unix-like)
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// IsSystem reports system entries; Unix-like platforms have no such flag.
func IsSystem(_, _ string) bool {
	return false
}

// ShouldHideFromListing is a no-op on non-Windows platforms.
func ShouldHideFromListing(_, _ string) bool {
	return false
}
