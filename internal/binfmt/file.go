package binfmt

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile replaces path with data atomically: the bytes go to a temporary
// file in the same directory which is then renamed over path. A crash mid-write
// leaves the previous file intact.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Save encodes v into an envelope and writes it atomically to path.
func Save[T any](path string, magic Magic, version uint32, v T, c Codec[T]) error {
	return WriteFile(path, Encode(magic, version, v, c))
}

// Load reads path and decodes it through the given version chain. Missing or
// unreadable files report ok == false just like undecodable ones.
func Load[T any](path string, magic Magic, steps ...Step[T]) (T, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		var zero T
		return zero, false
	}
	return DecodeChain(data, magic, steps...)
}
