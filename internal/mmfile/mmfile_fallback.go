//go:build !unix

package mmfile

import (
	"fmt"
	"os"
)

// Map reads the entire file when mmap is not available.
func Map(path string, limit int64) ([]byte, func() error, error) {
	noop := func() error { return nil }
	info, err := os.Stat(path)
	if err != nil {
		return nil, noop, err
	}
	if info.Size() > limit {
		return nil, noop, fmt.Errorf("%s: %d bytes (limit %d): %w", path, info.Size(), limit, ErrTooLarge)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, noop, err
	}
	return data, noop, nil
}
