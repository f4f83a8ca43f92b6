package config

import "errors"

var (
	// ErrParse wraps TOML syntax and type errors.
	ErrParse = errors.New("config parse error")
	// ErrInvalid wraps validation failures.
	ErrInvalid = errors.New("invalid config")
)
