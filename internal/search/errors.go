package search

import "errors"

// ErrUnknownMode is returned for mode names other than prefix, substring or fuzzy.
var ErrUnknownMode = errors.New("unknown search mode")
