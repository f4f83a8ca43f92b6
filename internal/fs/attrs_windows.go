//go:build windows

package fs

import (
	"os"
	"syscall"
)

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// getFileAttributes resolves Windows file attributes for fullPath, falling
// back to name when the full path no longer exists.
func getFileAttributes(fullPath, name string) (uint32, error) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, os.ErrInvalid
	}

	attrs, err := attributesOf(target)
	if err == nil {
		return attrs, nil
	}
	if os.IsNotExist(err) && fullPath != "" && name != "" && fullPath != name {
		if alt, altErr := attributesOf(name); altErr == nil {
			return alt, nil
		}
	}
	return 0, err
}

func attributesOf(path string) (uint32, error) {
	ptr, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}
	return syscall.GetFileAttributes(ptr)
}
