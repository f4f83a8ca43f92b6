package binfmt

import "errors"

var (
	// ErrLength indicates a collection length larger than the remaining payload.
	ErrLength = errors.New("binfmt: collection length exceeds payload")

	// ErrTrailingBytes indicates a payload that decoded without consuming all input.
	ErrTrailingBytes = errors.New("binfmt: trailing bytes after payload")
)
