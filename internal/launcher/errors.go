package launcher

import "errors"

var (
	// ErrNotLaunchable is returned for placeholder rows such as an
	// unreadable-folder entry.
	ErrNotLaunchable = errors.New("result cannot be launched")
	// ErrTargetMissing is returned when the launch target no longer exists.
	ErrTargetMissing = errors.New("launch target does not exist")
	// ErrNoOpener is returned when no system command can open files.
	ErrNoOpener = errors.New("no opener command available")
)
