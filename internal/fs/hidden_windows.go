//go:build windows

package fs

// IsHidden checks if a file is hidden on this platform (Windows)
func IsHidden(fullPath string, name string) bool {
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&fileAttributeHidden != 0
}

// IsSystem reports whether the entry carries FILE_ATTRIBUTE_SYSTEM.
func IsSystem(fullPath string, name string) bool {
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	return attrs&fileAttributeSystem != 0
}

// ShouldHideFromListing reports whether an entry should never appear in
// listings, even when hidden and system entries are shown (compatibility
// junctions such as "Application Data" carry both system and reparse flags).
func ShouldHideFromListing(fullPath, name string) bool {
	if fullPath == "" && name == "" {
		return false
	}
	attrs, err := getFileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const protectedMask = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protectedMask == protectedMask
}
